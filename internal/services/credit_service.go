package services

import (
	"slices"

	"nodeBoard/internal/enums"
	"nodeBoard/internal/errs"
	"nodeBoard/internal/models"
	"nodeBoard/internal/repositories"
)

type CreditService struct {
	creditRepo *repositories.CreditRepository
}

func NewCreditService(creditRepo *repositories.CreditRepository) *CreditService {
	return &CreditService{
		creditRepo: creditRepo,
	}
}

func (cs *CreditService) Balance(userID uint, creditType string) (int64, error) {
	if !slices.Contains(enums.CreditTypes, creditType) {
		return 0, errs.ErrUnknownCreditType
	}
	return cs.creditRepo.Balance(userID, creditType)
}

func (cs *CreditService) Balances(userID uint) ([]models.CreditBalance, error) {
	return cs.creditRepo.Balances(userID)
}

// Add appends a positive grant or refund row.
func (cs *CreditService) Add(userID uint, creditType string, amount int64, kind string, ref models.CreditReference) error {
	if kind != enums.CREDIT_KIND_GRANT && kind != enums.CREDIT_KIND_REFUND {
		return errs.ErrInvalidCreditAmount
	}
	transaction, err := newTransaction(userID, creditType, amount, kind, ref)
	if err != nil {
		return err
	}
	return cs.creditRepo.Insert(transaction)
}

// Spend fails with ErrInsufficientCredits unless the balance covers amount.
func (cs *CreditService) Spend(userID uint, creditType string, amount int64, ref models.CreditReference) error {
	transaction, err := newTransaction(userID, creditType, amount, enums.CREDIT_KIND_SPEND, ref)
	if err != nil {
		return err
	}
	transaction.Amount = -amount
	return cs.creditRepo.Spend(transaction)
}

func (cs *CreditService) Refund(userID uint, creditType string, amount int64, ref models.CreditReference) error {
	return cs.Add(userID, creditType, amount, enums.CREDIT_KIND_REFUND, ref)
}

// Grant adds one grant row per credit type with a positive amount.
func (cs *CreditService) Grant(userID uint, amounts map[string]int64, ref models.CreditReference) error {
	return cs.creditRepo.InsertMany(GrantTransactions(userID, amounts, ref))
}

// GrantTransactions builds grant rows in credit type order without writing them.
func GrantTransactions(userID uint, amounts map[string]int64, ref models.CreditReference) []models.CreditTransaction {
	var transactions []models.CreditTransaction
	for _, creditType := range enums.CreditTypes {
		amount := amounts[creditType]
		if amount <= 0 {
			continue
		}
		transactions = append(transactions, models.CreditTransaction{
			UserID:       userID,
			CreditType:   creditType,
			Kind:         enums.CREDIT_KIND_GRANT,
			Amount:       amount,
			WhiteboardID: ref.WhiteboardID,
			NodeID:       ref.NodeID,
			Reference:    ref.Reference,
		})
	}
	return transactions
}

func (cs *CreditService) History(userID uint, page, size int) (*models.PaginatedResponse, error) {
	transactions, total, err := cs.creditRepo.GetUserTransactions(userID, page, size)
	if err != nil {
		return nil, err
	}
	return &models.PaginatedResponse{
		Items: transactions,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func newTransaction(userID uint, creditType string, amount int64, kind string, ref models.CreditReference) (*models.CreditTransaction, error) {
	if !slices.Contains(enums.CreditTypes, creditType) {
		return nil, errs.ErrUnknownCreditType
	}
	if amount <= 0 {
		return nil, errs.ErrInvalidCreditAmount
	}
	return &models.CreditTransaction{
		UserID:       userID,
		CreditType:   creditType,
		Kind:         kind,
		Amount:       amount,
		WhiteboardID: ref.WhiteboardID,
		NodeID:       ref.NodeID,
		Reference:    ref.Reference,
	}, nil
}
