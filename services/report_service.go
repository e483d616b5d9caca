package services

import (
	"fmt"
	"os"
	"path/filepath"

	"stitch-erp/config"
	"stitch-erp/controllers/idgen"
	"stitch-erp/models"
	"stitch-erp/repositories"
	"stitch-erp/types"

	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

type ReportService struct {
	db   *gorm.DB
	repo *repositories.ReportRepository
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, repo: repositories.NewReportRepository(db)}
}

// GenerateReport aggregates one month, persists the report row and
// writes the workbook next to the binary under reports/.
func (s *ReportService) GenerateReport(unitID *uint, year, month, userID int) (*models.Report, error) {
	if unitID != nil {
		var unit models.ProductionUnit
		if err := s.db.First(&unit, *unitID).Error; err != nil {
			return nil, fmt.Errorf("production unit not found: %w", err)
		}
	}

	totals, err := s.repo.GetPeriodTotals(unitID, year, month)
	if err != nil {
		return nil, err
	}

	netProfit := totals.Revenues.
		Sub(totals.Expenses).
		Sub(totals.Salaries).
		Sub(totals.Maintenance)

	report := models.Report{
		ID:               types.SnowflakeID(idgen.GenerateID()),
		ReportNo:         idgen.GenerateReportNo(),
		UnitID:           unitID,
		PeriodYear:       year,
		PeriodMonth:      month,
		TotalExpenses:    totals.Expenses,
		TotalRevenues:    totals.Revenues,
		TotalSalaries:    totals.Salaries,
		TotalMaintenance: totals.Maintenance,
		OrderCount:       totals.OrderCount,
		NetProfit:        netProfit,
		CreatedBy:        userID,
	}

	filePath, err := s.writeWorkbook(&report)
	if err != nil {
		config.LogError(config.GetLogger(), "services", "GenerateReport", "write workbook", report.ReportNo, err)
	} else {
		report.FilePath = filePath
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, err
	}

	return &report, nil
}

func (s *ReportService) writeWorkbook(report *models.Report) (string, error) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	f.SetCellValue(sheet, "A1", "Report No")
	f.SetCellValue(sheet, "B1", report.ReportNo)
	f.SetCellValue(sheet, "A2", "Period")
	f.SetCellValue(sheet, "B2", fmt.Sprintf("%04d-%02d", report.PeriodYear, report.PeriodMonth))
	if report.UnitID != nil {
		f.SetCellValue(sheet, "A3", "Unit ID")
		f.SetCellValue(sheet, "B3", *report.UnitID)
	} else {
		f.SetCellValue(sheet, "A3", "Scope")
		f.SetCellValue(sheet, "B3", "All units")
	}

	rows := [][]interface{}{
		{"Total Revenues", report.TotalRevenues.String()},
		{"Total Expenses", report.TotalExpenses.String()},
		{"Total Salaries", report.TotalSalaries.String()},
		{"Total Maintenance", report.TotalMaintenance.String()},
		{"Order Count", report.OrderCount},
		{"Net Profit", report.NetProfit.String()},
	}
	for i, row := range rows {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", i+5), row[0])
		f.SetCellValue(sheet, fmt.Sprintf("B%d", i+5), row[1])
	}

	if err := os.MkdirAll("reports", 0o755); err != nil {
		return "", err
	}

	filePath := filepath.Join("reports", report.ReportNo+".xlsx")
	if err := f.SaveAs(filePath); err != nil {
		return "", err
	}

	return filePath, nil
}

// EmailReport sends the generated workbook as an attachment
func (s *ReportService) EmailReport(report *models.Report, toEmails []string) error {
	if config.SMTPHost == "" || config.SMTPSender == "" {
		return fmt.Errorf("SMTP is not configured")
	}
	if report.FilePath == "" {
		return fmt.Errorf("report %s has no workbook on disk", report.ReportNo)
	}

	subject := fmt.Sprintf("Monthly Report %s (%04d-%02d)", report.ReportNo, report.PeriodYear, report.PeriodMonth)
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Monthly Report %s</h3>
				<p>Period: <strong>%04d-%02d</strong></p>
				<p>Net profit: <strong>%s</strong></p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, report.ReportNo, report.PeriodYear, report.PeriodMonth, report.NetProfit.String())

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)
	msg.Attach(report.FilePath)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		config.LogError(config.GetLogger(), "services", "EmailReport", "dial and send", report.ReportNo, err)
		return err
	}

	return nil
}
