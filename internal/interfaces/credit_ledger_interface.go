package interfaces

import "nodeBoard/internal/models"

type CreditLedger interface {
	Spend(userID uint, creditType string, amount int64, ref models.CreditReference) error
	Refund(userID uint, creditType string, amount int64, ref models.CreditReference) error
}
