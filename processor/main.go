package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"stitch-erp/config"
	"stitch-erp/database"
	"stitch-erp/models"
	"stitch-erp/utils"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gopkg.in/gomail.v2"
	"gorm.io/gorm"
)

// Importer for legacy bookkeeping spreadsheets. Files are named by
// content: EXP_*.xlsx (expenses), REV_*.xlsx (revenues),
// SAL_*.xlsx (salary payments). Processed files move to <folder>/processed.

type importSummary struct {
	Filename string
	Imported int
	Skipped  int
}

func processAllFiles(db *gorm.DB, folder string) []importSummary {
	files, err := filepath.Glob(filepath.Join(folder, "*.xlsx"))
	if err != nil {
		log.Fatal("Failed to read folder:", err)
	}

	var summaries []importSummary
	for _, file := range files {
		summary, ok := processFile(db, file, folder)
		if ok {
			summaries = append(summaries, summary)
		}
	}
	return summaries
}

func processFile(db *gorm.DB, filename, folder string) (importSummary, bool) {
	fileNameOnly := filepath.Base(filename)

	var existingFile models.FileLog
	if err := db.Where("filename = ?", fileNameOnly).First(&existingFile).Error; err == nil {
		log.Println("File already processed, skipping:", fileNameOnly)
		return importSummary{}, false
	}

	info, err := os.Stat(filename)
	if err != nil {
		fmt.Println("Failed to stat file:", err)
		return importSummary{}, false
	}

	fmt.Println("Processing file:", fileNameOnly)

	var imported, skipped int
	switch {
	case strings.HasPrefix(fileNameOnly, "EXP_"):
		imported, skipped = importExpenses(db, filename)
	case strings.HasPrefix(fileNameOnly, "REV_"):
		imported, skipped = importRevenues(db, filename)
	case strings.HasPrefix(fileNameOnly, "SAL_"):
		imported, skipped = importSalaries(db, filename)
	default:
		fmt.Println("Unrecognized file, skipping:", fileNameOnly)
		return importSummary{}, false
	}

	utils.InsertFileLog(db, models.FileLog{
		Filename:     fileNameOnly,
		RowsImported: imported,
		RowsSkipped:  skipped,
		DateModified: info.ModTime(),
	})

	moveToProcessed(filename, folder)

	fmt.Printf("Done: %s (%d imported, %d skipped)\n", fileNameOnly, imported, skipped)
	return importSummary{Filename: fileNameOnly, Imported: imported, Skipped: skipped}, true
}

// resolveUnit maps a legacy unit code to its database row, creating
// the unit on first sight the way the old spreadsheets implied units.
func resolveUnit(db *gorm.DB, unitCode string) (models.ProductionUnit, bool) {
	unitCode = strings.ToUpper(strings.TrimSpace(unitCode))
	if unitCode == "" {
		return models.ProductionUnit{}, false
	}

	var unit models.ProductionUnit
	db.Where("unit_code = ?", unitCode).First(&unit)
	if unit.ID == 0 {
		unit = models.ProductionUnit{
			UnitCode: unitCode,
			UnitName: unitCode,
			Status:   "active",
		}
		db.Create(&unit)
	}
	return unit, true
}

func parseLegacyDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "02-01-2006", "02/01/2006", "01-02-06"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	return decimal.NewFromString(s)
}

func cell(row []string, i int) string {
	if i < len(row) {
		return strings.TrimSpace(row[i])
	}
	return ""
}

// importExpenses reads rows of UNIT_CODE, DATE, CATEGORY, DESCRIPTION,
// AMOUNT, PAID_TO, PAYMENT_MODE
func importExpenses(db *gorm.DB, filename string) (imported, skipped int) {
	rows, err := readSheet(filename)
	if err != nil {
		fmt.Println("Failed to read spreadsheet:", err)
		return 0, 0
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		unit, ok := resolveUnit(db, cell(row, 0))
		if !ok {
			skipped++
			continue
		}
		expenseDate, err := parseLegacyDate(cell(row, 1))
		if err != nil {
			skipped++
			continue
		}
		amount, err := parseAmount(cell(row, 4))
		if err != nil || !amount.IsPositive() {
			skipped++
			continue
		}

		expense := models.Expense{
			UnitID:      unit.ID,
			Category:    strings.ToLower(cell(row, 2)),
			Description: cell(row, 3),
			Amount:      amount,
			ExpenseDate: expenseDate,
			PaidTo:      cell(row, 5),
			PaymentMode: strings.ToLower(cell(row, 6)),
		}
		if err := db.Create(&expense).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

// importRevenues reads rows of UNIT_CODE, DATE, SOURCE, DESCRIPTION,
// AMOUNT, RECEIVED_FROM, PAYMENT_MODE
func importRevenues(db *gorm.DB, filename string) (imported, skipped int) {
	rows, err := readSheet(filename)
	if err != nil {
		fmt.Println("Failed to read spreadsheet:", err)
		return 0, 0
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		unit, ok := resolveUnit(db, cell(row, 0))
		if !ok {
			skipped++
			continue
		}
		revenueDate, err := parseLegacyDate(cell(row, 1))
		if err != nil {
			skipped++
			continue
		}
		amount, err := parseAmount(cell(row, 4))
		if err != nil || !amount.IsPositive() {
			skipped++
			continue
		}

		revenue := models.Revenue{
			UnitID:       unit.ID,
			Source:       strings.ToLower(cell(row, 2)),
			Description:  cell(row, 3),
			Amount:       amount,
			RevenueDate:  revenueDate,
			ReceivedFrom: cell(row, 5),
			PaymentMode:  strings.ToLower(cell(row, 6)),
		}
		if err := db.Create(&revenue).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

// importSalaries reads rows of UNIT_CODE, EMPLOYEE, YEAR, MONTH, BASE,
// OVERTIME, DEDUCTIONS, PAYMENT_DATE, PAYMENT_MODE
func importSalaries(db *gorm.DB, filename string) (imported, skipped int) {
	rows, err := readSheet(filename)
	if err != nil {
		fmt.Println("Failed to read spreadsheet:", err)
		return 0, 0
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		unit, ok := resolveUnit(db, cell(row, 0))
		if !ok {
			skipped++
			continue
		}
		employee := cell(row, 1)
		year, _ := strconv.Atoi(cell(row, 2))
		month, _ := strconv.Atoi(cell(row, 3))
		if employee == "" || year < 2000 || month < 1 || month > 12 {
			skipped++
			continue
		}

		base, err := parseAmount(cell(row, 4))
		if err != nil || !base.IsPositive() {
			skipped++
			continue
		}
		overtime, err := parseAmount(cell(row, 5))
		if err != nil {
			overtime = decimal.Zero
		}
		deductions, err := parseAmount(cell(row, 6))
		if err != nil {
			deductions = decimal.Zero
		}
		netAmount := base.Add(overtime).Sub(deductions)
		if netAmount.IsNegative() {
			skipped++
			continue
		}

		paymentDate, err := parseLegacyDate(cell(row, 7))
		if err != nil {
			paymentDate = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
		}

		// the legacy sheets repeat months across files
		var existing models.SalaryPayment
		if err := db.Where("unit_id = ? AND employee_name = ? AND period_year = ? AND period_month = ?",
			unit.ID, employee, year, month).First(&existing).Error; err == nil {
			skipped++
			continue
		}

		payment := models.SalaryPayment{
			UnitID:       unit.ID,
			EmployeeName: employee,
			PeriodYear:   year,
			PeriodMonth:  month,
			BaseAmount:   base,
			Overtime:     overtime,
			Deductions:   deductions,
			NetAmount:    netAmount,
			PaymentDate:  paymentDate,
			PaymentMode:  strings.ToLower(cell(row, 8)),
		}
		if err := db.Create(&payment).Error; err != nil {
			skipped++
			continue
		}
		imported++
	}
	return imported, skipped
}

func readSheet(filename string) ([][]string, error) {
	f, err := excelize.OpenFile(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	return f.GetRows(sheetName)
}

func moveToProcessed(filename, folder string) {
	processedFolder := filepath.Join(folder, "processed")
	if _, err := os.Stat(processedFolder); os.IsNotExist(err) {
		if err := os.MkdirAll(processedFolder, os.ModePerm); err != nil {
			log.Fatalf("Failed to create processed folder: %v", err)
		}
	}

	processedFilePath := filepath.Join(processedFolder, filepath.Base(filename))
	if err := os.Rename(filename, processedFilePath); err != nil {
		if err := copyAndDeleteFile(filename, processedFilePath); err != nil {
			log.Fatalf("Failed to move file to processed folder: %v", err)
		}
	}
}

func copyAndDeleteFile(src, dst string) error {
	sourceFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer sourceFile.Close()

	destinationFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer destinationFile.Close()

	if _, err := io.Copy(destinationFile, sourceFile); err != nil {
		return err
	}

	return os.Remove(src)
}

func sendEmailNotification(toEmails []string, summaries []importSummary) error {
	if config.SMTPHost == "" || config.SMTPSender == "" {
		return nil
	}

	var lines strings.Builder
	for _, s := range summaries {
		fmt.Fprintf(&lines, "<li><strong>%s</strong>: %d imported, %d skipped</li>", s.Filename, s.Imported, s.Skipped)
	}

	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Legacy spreadsheet import finished</h3>
				<ul>%s</ul>
				<p>This is an auto-generated email. Please do not reply to this email or its recipients.</p>
			</body>
		</html>
	`, lines.String())

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPSender)
	msg.SetHeader("To", toEmails...)
	msg.SetHeader("Subject", fmt.Sprintf("Spreadsheet import: %d file(s) processed", len(summaries)))
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPSender, config.SMTPPassword)
	if err := dialer.DialAndSend(msg); err != nil {
		fmt.Println("Failed to send email:", err)
		return err
	}
	return nil
}

func main() {
	folder := flag.String("folder", "./legacy-data", "folder containing legacy .xlsx files")
	notify := flag.String("notify", "", "comma-separated email addresses for the import summary")
	flag.Parse()

	db, err := database.OpenMainDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	fmt.Println("Spreadsheet processor running...")

	summaries := processAllFiles(db, *folder)

	if len(summaries) > 0 && *notify != "" {
		sendEmailNotification(strings.Split(*notify, ","), summaries)
	}

	fmt.Printf("All spreadsheets processed: %d file(s)\n", len(summaries))
}
