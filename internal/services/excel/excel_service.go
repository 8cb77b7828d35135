package excel

import (
	"fmt"
	"time"

	"github.com/venturescope/venturescope-backend/internal/database/repository"
	"github.com/venturescope/venturescope-backend/internal/models"

	"github.com/xuri/excelize/v2"
)

// Service builds Excel exports for the admin console. Workbooks are built in
// memory and streamed straight to the response.
type Service struct {
	userRepo         *repository.UserRepository
	subscriptionRepo *repository.SubscriptionRepository
}

func NewExcelService(userRepo *repository.UserRepository, subscriptionRepo *repository.SubscriptionRepository) *Service {
	return &Service{
		userRepo:         userRepo,
		subscriptionRepo: subscriptionRepo,
	}
}

const exportBatchSize = 500

// ExportUsers builds a workbook with every user account.
func (s *Service) ExportUsers() (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "Users"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	columns := []string{
		"id", "email", "full_name", "is_verified", "is_active", "is_admin",
		"newsletter_subscribed", "last_login_at", "created_at",
	}
	if err := writeHeader(f, sheet, columns); err != nil {
		return nil, "", err
	}

	row := 2
	for offset := 0; ; offset += exportBatchSize {
		users, _, err := s.userRepo.List(repository.UserListFilter{}, offset, exportBatchSize)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list users: %w", err)
		}
		if len(users) == 0 {
			break
		}
		for _, u := range users {
			lastLogin := ""
			if u.LastLoginAt != nil {
				lastLogin = u.LastLoginAt.Format(time.RFC3339)
			}
			values := []interface{}{
				u.ID, u.Email, u.FullName, u.IsVerified, u.IsActive, u.IsAdmin,
				u.SubscribedToNewsletter(), lastLogin, u.CreatedAt.Format(time.RFC3339),
			}
			for i, v := range values {
				cell := fmt.Sprintf("%s%d", columnToLetter(i+1), row)
				f.SetCellValue(sheet, cell, v)
			}
			row++
		}
		if len(users) < exportBatchSize {
			break
		}
	}

	filename := fmt.Sprintf("users_%d.xlsx", time.Now().Unix())
	return f, filename, nil
}

// ExportSubscriptions builds a workbook with every WhatsApp subscription.
func (s *Service) ExportSubscriptions() (*excelize.File, string, error) {
	f := excelize.NewFile()
	sheet := "Subscriptions"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, "", fmt.Errorf("failed to rename sheet: %w", err)
	}

	columns := []string{"id", "phone", "name", "is_active", "last_sent_at", "created_at"}
	if err := writeHeader(f, sheet, columns); err != nil {
		return nil, "", err
	}

	row := 2
	for offset := 0; ; offset += exportBatchSize {
		subs, _, err := s.subscriptionRepo.List(offset, exportBatchSize)
		if err != nil {
			return nil, "", fmt.Errorf("failed to list subscriptions: %w", err)
		}
		if len(subs) == 0 {
			break
		}
		for _, sub := range subs {
			row = writeSubscriptionRow(f, sheet, row, sub)
		}
		if len(subs) < exportBatchSize {
			break
		}
	}

	filename := fmt.Sprintf("whatsapp_subscriptions_%d.xlsx", time.Now().Unix())
	return f, filename, nil
}

func writeSubscriptionRow(f *excelize.File, sheet string, row int, sub models.WhatsAppSubscription) int {
	lastSent := ""
	if sub.LastSentAt != nil {
		lastSent = sub.LastSentAt.Format(time.RFC3339)
	}
	values := []interface{}{
		sub.ID, sub.Phone, sub.Name, sub.IsActive, lastSent, sub.CreatedAt.Format(time.RFC3339),
	}
	for i, v := range values {
		cell := fmt.Sprintf("%s%d", columnToLetter(i+1), row)
		f.SetCellValue(sheet, cell, v)
	}
	return row + 1
}

func writeHeader(f *excelize.File, sheet string, columns []string) error {
	for i, col := range columns {
		cell := fmt.Sprintf("%s1", columnToLetter(i+1))
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"D9D9D9"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err == nil {
		f.SetCellStyle(sheet, "A1", fmt.Sprintf("%s1", columnToLetter(len(columns))), headerStyle)
	}

	for i := range columns {
		f.SetColWidth(sheet, columnToLetter(i+1), columnToLetter(i+1), 24)
	}
	return nil
}

// columnToLetter converts a 1-based column index to its Excel letter
func columnToLetter(col int) string {
	letter := ""
	for col > 0 {
		col--
		letter = string(rune('A'+col%26)) + letter
		col /= 26
	}
	return letter
}
