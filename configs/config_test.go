package configs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	c, err := Load(writeConfig(t, "app:\n  env: development\n"))
	require.NoError(t, err)

	assert.Equal(t, ":8000", c.Viper.GetString("http.addr"))
	assert.Equal(t, 100, c.Viper.GetInt("execution.max_steps"))
	assert.Equal(t, 24*time.Hour, c.JwtExpiration())
	assert.NotEmpty(t, c.JwtKey())
	assert.True(t, c.IsDevelopment())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "http:\n  addr: \":9000\"\n")
	t.Setenv("NODEBOARD_HTTP_ADDR", ":9100")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9100", c.Viper.GetString("http.addr"))
}

func TestLoad_RequiresSecretInProduction(t *testing.T) {
	_, err := Load(writeConfig(t, "app:\n  env: production\n"))
	require.Error(t, err)

	c, err := Load(writeConfig(t, "app:\n  env: production\njwt:\n  secret: s3cret\n"))
	require.NoError(t, err)
	assert.Equal(t, []byte("s3cret"), c.JwtKey())
}

func TestLoad_RejectsNegativeCost(t *testing.T) {
	_, err := Load(writeConfig(t, "credits:\n  cost:\n    image: -1\n"))
	require.Error(t, err)
}

func TestDuration(t *testing.T) {
	c, err := Load(writeConfig(t, "execution:\n  timeout: 90s\nsubscriptions:\n  sync_interval: nonsense\n"))
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, c.Duration("execution.timeout", time.Minute))
	assert.Equal(t, time.Hour, c.Duration("subscriptions.sync_interval", time.Hour))
}

func TestCreditAmounts(t *testing.T) {
	c, err := Load(writeConfig(t, "credits:\n  signup:\n    text: 3\n    image: 0\n"))
	require.NoError(t, err)

	amounts := c.CreditAmounts("credits.signup")
	assert.Equal(t, int64(3), amounts["text"])
	assert.NotContains(t, amounts, "image")
	assert.Equal(t, int64(5), amounts["speech"])
}

func TestPlanForPrice(t *testing.T) {
	c, err := Load(writeConfig(t, "plans:\n  pro:\n    price_id: price_123\n"))
	require.NoError(t, err)

	assert.Equal(t, "pro", c.PlanForPrice("price_123"))
	assert.Equal(t, "free", c.PlanForPrice("price_unknown"))
	assert.Equal(t, "free", c.PlanForPrice(""))
}
