package repositories

import (
	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CreditRepository struct {
	db *gorm.DB
}

func NewCreditRepository(db *gorm.DB) *CreditRepository {
	return &CreditRepository{
		db: db,
	}
}

func (cr *CreditRepository) Insert(transaction *models.CreditTransaction) error {
	return cr.db.Create(transaction).Error
}

// InsertMany writes all rows in a single statement.
func (cr *CreditRepository) InsertMany(transactions []models.CreditTransaction) error {
	if len(transactions) == 0 {
		return nil
	}
	return cr.db.Create(&transactions).Error
}

func (cr *CreditRepository) Balance(userID uint, creditType string) (int64, error) {
	return balance(cr.db, userID, creditType)
}

func balance(db *gorm.DB, userID uint, creditType string) (int64, error) {
	var total int64
	err := db.Model(&models.CreditTransaction{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("user_id = ? AND credit_type = ?", userID, creditType).
		Scan(&total).Error
	return total, err
}

// Balances returns one entry per known credit type, zero when the user has
// no rows for it.
func (cr *CreditRepository) Balances(userID uint) ([]models.CreditBalance, error) {
	var rows []models.CreditBalance
	err := cr.db.Model(&models.CreditTransaction{}).
		Select("credit_type, COALESCE(SUM(amount), 0) AS balance").
		Where("user_id = ?", userID).
		Group("credit_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	byType := make(map[string]int64, len(rows))
	for _, row := range rows {
		byType[row.CreditType] = row.Balance
	}
	balances := make([]models.CreditBalance, 0, len(enums.CreditTypes))
	for _, creditType := range enums.CreditTypes {
		balances = append(balances, models.CreditBalance{CreditType: creditType, Balance: byType[creditType]})
	}
	return balances, nil
}

// Spend checks the balance and inserts the negative row in one transaction.
// The user row is locked first so concurrent spends for the same user
// serialise on databases that support row locks.
func (cr *CreditRepository) Spend(transaction *models.CreditTransaction) error {
	return cr.db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Select("id").
			First(&user, transaction.UserID).Error; err != nil {
			return err
		}

		current, err := balance(tx, transaction.UserID, transaction.CreditType)
		if err != nil {
			return err
		}
		if current < -transaction.Amount {
			return errs.ErrInsufficientCredits
		}
		return tx.Create(transaction).Error
	})
}

func (cr *CreditRepository) GetUserTransactions(userID uint, page, size int) ([]models.CreditTransaction, int64, error) {
	var transactions []models.CreditTransaction
	var total int64

	transactionErr := cr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Scopes(utils.Paginate(page, size)).
			Where("user_id = ?", userID).
			Order("id DESC").
			Find(&transactions).Error; err != nil {
			return err
		}
		return tx.Model(&models.CreditTransaction{}).Where("user_id = ?", userID).Count(&total).Error
	})
	if transactionErr != nil {
		return nil, 0, transactionErr
	}
	return transactions, total, nil
}
