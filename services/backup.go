package services

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"metalic-backend/models"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// BackupService exports the ledger tables as a ZIP of CSV files and restores
// from one. It also owns the daily auto-backup schedule. Constructed with its
// dependencies and handed to main; there is no package-level instance.
type BackupService struct {
	db   *gorm.DB
	dir  string
	cron *cron.Cron
}

func NewBackupService(db *gorm.DB, dir string) *BackupService {
	return &BackupService{db: db, dir: dir}
}

// Settings returns the backup settings row, creating it on first access.
func (s *BackupService) Settings() (*models.BackupSettings, error) {
	var settings models.BackupSettings
	err := s.db.First(&settings).Error
	if err == gorm.ErrRecordNotFound {
		settings = models.BackupSettings{}
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, err
		}
		return &settings, nil
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

func (s *BackupService) UpdateSettings(backupTime *string, enabled *bool) (*models.BackupSettings, error) {
	settings, err := s.Settings()
	if err != nil {
		return nil, err
	}
	if backupTime != nil {
		if _, err := time.Parse("15:04", *backupTime); err != nil {
			return nil, invalid("backup_time must be HH:MM")
		}
		settings.BackupTime = *backupTime
	}
	if enabled != nil {
		settings.AutoBackupEnabled = *enabled
	}
	if err := s.db.Save(settings).Error; err != nil {
		return nil, err
	}
	if err := s.Reschedule(); err != nil {
		return nil, err
	}
	return settings, nil
}

// StartScheduler arms the daily backup job from the stored settings.
func (s *BackupService) StartScheduler() error {
	return s.Reschedule()
}

// Reschedule replaces the cron schedule with the current settings.
func (s *BackupService) Reschedule() error {
	settings, err := s.Settings()
	if err != nil {
		return err
	}

	if s.cron != nil {
		s.cron.Stop()
		s.cron = nil
	}
	if !settings.AutoBackupEnabled {
		return nil
	}

	at, err := time.Parse("15:04", settings.BackupTime)
	if err != nil {
		return invalid("backup_time must be HH:MM")
	}

	c := cron.New()
	spec := fmt.Sprintf("%d %d * * *", at.Minute(), at.Hour())
	_, err = c.AddFunc(spec, func() {
		if _, err := s.CreateBackup(); err != nil {
			log.Printf("Auto backup failed: %v", err)
		}
	})
	if err != nil {
		return err
	}
	c.Start()
	s.cron = c
	log.Printf("Backup scheduled daily at %s", settings.BackupTime)
	return nil
}

// CreateBackup writes every ledger table as a CSV file inside a timestamped
// ZIP under the backup directory and returns the archive path.
func (s *BackupService) CreateBackup() (string, error) {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	name := fmt.Sprintf("metalic_backup_%s.zip", time.Now().Format("20060102_150405"))
	path := filepath.Join(s.dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := s.WriteBackup(f); err != nil {
		os.Remove(path)
		return "", err
	}
	return path, nil
}

// WriteBackup streams the ZIP archive to w.
func (s *BackupService) WriteBackup(w io.Writer) error {
	zw := zip.NewWriter(w)

	for _, table := range backupTables {
		cw, err := zw.Create(table.file)
		if err != nil {
			return err
		}
		writer := csv.NewWriter(cw)
		if err := writer.Write(table.header); err != nil {
			return err
		}
		rows, err := table.dump(s.db)
		if err != nil {
			return err
		}
		if err := writer.WriteAll(rows); err != nil {
			return err
		}
	}

	return zw.Close()
}

// Restore clears the ledger tables and reloads them from the archive, all in
// one transaction so a malformed backup cannot leave a half-restored store.
func (s *BackupService) Restore(r io.ReaderAt, size int64) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return invalid("not a valid backup archive")
	}

	files := make(map[string][][]string)
	for _, zf := range zr.File {
		rc, err := zf.Open()
		if err != nil {
			return err
		}
		records, err := csv.NewReader(rc).ReadAll()
		rc.Close()
		if err != nil {
			return invalid("malformed csv in %s", zf.Name)
		}
		if len(records) > 0 {
			files[zf.Name] = records[1:] // drop header
		}
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		// Children before parents.
		for _, model := range []interface{}{
			&models.EmployeePayment{}, &models.EmployeeSalary{}, &models.Employee{},
			&models.StockEntry{}, &models.StockItem{},
			&models.Transaction{}, &models.Bill{},
			&models.Expense{}, &models.Customer{}, &models.FirmSettings{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return err
			}
		}

		for _, table := range backupTables {
			rows, ok := files[table.file]
			if !ok {
				log.Printf("Backup restore: %s not found in archive, skipping", table.file)
				continue
			}
			for _, row := range rows {
				if err := table.load(tx, row); err != nil {
					return invalid("bad row in %s: %v", table.file, err)
				}
			}
		}
		return nil
	})
}

type backupTable struct {
	file   string
	header []string
	dump   func(db *gorm.DB) ([][]string, error)
	load   func(tx *gorm.DB, row []string) error
}

var backupTables = []backupTable{
	{
		file:   "customers.csv",
		header: []string{"id", "name", "mobile", "address", "total_bills", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var customers []models.Customer
			if err := db.Find(&customers).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(customers))
			for _, c := range customers {
				rows = append(rows, []string{
					c.ID.String(), c.Name, c.Mobile, c.Address,
					strconv.Itoa(c.TotalBills), fmtTime(c.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 6 {
				return fmt.Errorf("expected 6 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			totalBills, _ := strconv.Atoi(row[4])
			customer := models.Customer{
				ID: id, Name: row[1], Mobile: row[2], Address: row[3],
				TotalBills: totalBills, CreatedAt: parseTime(row[5]),
			}
			return tx.Create(&customer).Error
		},
	},
	{
		file: "bills.csv",
		header: []string{"id", "bill_number", "customer_id", "item_name", "item",
			"weight", "tunch", "wages", "wastage", "silver_amount", "total_fine",
			"total_amount", "payment_type", "is_return", "slip_no", "description",
			"date", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var bills []models.Bill
			if err := db.Find(&bills).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(bills))
			for _, b := range bills {
				rows = append(rows, []string{
					b.ID.String(), b.BillNumber, b.CustomerID.String(), b.ItemName,
					b.Item, fmtFloat(b.Weight), fmtFloat(b.Tunch), fmtFloat(b.Wages),
					fmtFloat(b.Wastage), fmtFloat(b.SilverAmount), fmtFloat(b.TotalFine),
					fmtFloat(b.TotalAmount), b.PaymentType, strconv.FormatBool(b.IsReturn),
					b.SlipNo, b.Description, b.Date.Format("2006-01-02"), fmtTime(b.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 18 {
				return fmt.Errorf("expected 18 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			customerID, err := uuid.Parse(row[2])
			if err != nil {
				return err
			}
			date, err := time.Parse("2006-01-02", row[16])
			if err != nil {
				return err
			}
			isReturn, _ := strconv.ParseBool(row[13])
			bill := models.Bill{
				ID: id, BillNumber: row[1], CustomerID: customerID,
				ItemName: row[3], Item: row[4],
				Weight: parseFloat(row[5]), Tunch: parseFloat(row[6]),
				Wages: parseFloat(row[7]), Wastage: parseFloat(row[8]),
				SilverAmount: parseFloat(row[9]), TotalFine: parseFloat(row[10]),
				TotalAmount: parseFloat(row[11]), PaymentType: row[12],
				IsReturn: isReturn, SlipNo: row[14], Description: row[15],
				Date: date, CreatedAt: parseTime(row[17]),
			}
			return tx.Create(&bill).Error
		},
	},
	{
		file: "transactions.csv",
		header: []string{"id", "bill_id", "customer_id", "amount",
			"transaction_type", "description", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var transactions []models.Transaction
			if err := db.Find(&transactions).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(transactions))
			for _, t := range transactions {
				billID := ""
				if t.BillID != nil {
					billID = t.BillID.String()
				}
				rows = append(rows, []string{
					t.ID.String(), billID, t.CustomerID.String(), fmtFloat(t.Amount),
					t.TransactionType, t.Description, fmtTime(t.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 7 {
				return fmt.Errorf("expected 7 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			customerID, err := uuid.Parse(row[2])
			if err != nil {
				return err
			}
			transaction := models.Transaction{
				ID: id, CustomerID: customerID, Amount: parseFloat(row[3]),
				TransactionType: row[4], Description: row[5], CreatedAt: parseTime(row[6]),
			}
			if row[1] != "" {
				billID, err := uuid.Parse(row[1])
				if err != nil {
					return err
				}
				transaction.BillID = &billID
			}
			return tx.Create(&transaction).Error
		},
	},
	{
		file: "expenses.csv",
		header: []string{"id", "description", "amount", "category", "status",
			"date", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var expenses []models.Expense
			if err := db.Find(&expenses).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(expenses))
			for _, e := range expenses {
				date := ""
				if e.Date != nil {
					date = e.Date.Format("2006-01-02")
				}
				rows = append(rows, []string{
					e.ID.String(), e.Description, fmtFloat(e.Amount), e.Category,
					e.Status, date, fmtTime(e.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 7 {
				return fmt.Errorf("expected 7 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			expense := models.Expense{
				ID: id, Description: row[1], Amount: parseFloat(row[2]),
				Category: row[3], Status: row[4], CreatedAt: parseTime(row[6]),
			}
			if row[5] != "" {
				date, err := time.Parse("2006-01-02", row[5])
				if err != nil {
					return err
				}
				expense.Date = &date
			}
			return tx.Create(&expense).Error
		},
	},
	{
		file:   "employees.csv",
		header: []string{"id", "name", "position", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var employees []models.Employee
			if err := db.Find(&employees).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(employees))
			for _, e := range employees {
				rows = append(rows, []string{
					e.ID.String(), e.Name, e.Position, fmtTime(e.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 4 {
				return fmt.Errorf("expected 4 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			employee := models.Employee{
				ID: id, Name: row[1], Position: row[2], CreatedAt: parseTime(row[3]),
			}
			return tx.Create(&employee).Error
		},
	},
	{
		file: "employee_salaries.csv",
		header: []string{"id", "employee_id", "month", "year", "monthly_salary",
			"present_days", "total_days", "calculated_salary", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var salaries []models.EmployeeSalary
			if err := db.Find(&salaries).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(salaries))
			for _, s := range salaries {
				rows = append(rows, []string{
					s.ID.String(), s.EmployeeID.String(), s.Month, strconv.Itoa(s.Year),
					fmtFloat(s.MonthlySalary), strconv.Itoa(s.PresentDays),
					strconv.Itoa(s.TotalDays), fmtFloat(s.CalculatedSalary),
					fmtTime(s.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 9 {
				return fmt.Errorf("expected 9 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			employeeID, err := uuid.Parse(row[1])
			if err != nil {
				return err
			}
			year, _ := strconv.Atoi(row[3])
			presentDays, _ := strconv.Atoi(row[5])
			totalDays, _ := strconv.Atoi(row[6])
			salary := models.EmployeeSalary{
				ID: id, EmployeeID: employeeID, Month: row[2], Year: year,
				MonthlySalary: parseFloat(row[4]), PresentDays: presentDays,
				TotalDays: totalDays, CalculatedSalary: parseFloat(row[7]),
				CreatedAt: parseTime(row[8]),
			}
			return tx.Create(&salary).Error
		},
	},
	{
		file: "employee_payments.csv",
		header: []string{"id", "employee_id", "amount", "payment_date",
			"description", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var payments []models.EmployeePayment
			if err := db.Find(&payments).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(payments))
			for _, p := range payments {
				rows = append(rows, []string{
					p.ID.String(), p.EmployeeID.String(), fmtFloat(p.Amount),
					p.PaymentDate.Format("2006-01-02"), p.Description, fmtTime(p.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 6 {
				return fmt.Errorf("expected 6 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			employeeID, err := uuid.Parse(row[1])
			if err != nil {
				return err
			}
			date, err := time.Parse("2006-01-02", row[3])
			if err != nil {
				return err
			}
			payment := models.EmployeePayment{
				ID: id, EmployeeID: employeeID, Amount: parseFloat(row[2]),
				PaymentDate: date, Description: row[4], CreatedAt: parseTime(row[5]),
			}
			return tx.Create(&payment).Error
		},
	},
	{
		file:   "stock_items.csv",
		header: []string{"id", "item_name", "current_weight", "description", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var items []models.StockItem
			if err := db.Find(&items).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(items))
			for _, i := range items {
				rows = append(rows, []string{
					i.ID.String(), i.ItemName, fmtFloat(i.CurrentWeight),
					i.Description, fmtTime(i.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 5 {
				return fmt.Errorf("expected 5 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			item := models.StockItem{
				ID: id, ItemName: row[1], CurrentWeight: parseFloat(row[2]),
				Description: row[3], CreatedAt: parseTime(row[4]),
			}
			return tx.Create(&item).Error
		},
	},
	{
		file: "stock_entries.csv",
		header: []string{"id", "item_name", "amount", "transaction_type",
			"description", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var entries []models.StockEntry
			if err := db.Find(&entries).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					e.ID.String(), e.ItemName, fmtFloat(e.Amount),
					e.TransactionType, e.Description, fmtTime(e.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 6 {
				return fmt.Errorf("expected 6 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			entry := models.StockEntry{
				ID: id, ItemName: row[1], Amount: parseFloat(row[2]),
				TransactionType: row[3], Description: row[4], CreatedAt: parseTime(row[5]),
			}
			return tx.Create(&entry).Error
		},
	},
	{
		file:   "firm_settings.csv",
		header: []string{"id", "firm_name", "gst_number", "address", "logo_path", "created_at"},
		dump: func(db *gorm.DB) ([][]string, error) {
			var settings []models.FirmSettings
			if err := db.Find(&settings).Error; err != nil {
				return nil, err
			}
			rows := make([][]string, 0, len(settings))
			for _, f := range settings {
				rows = append(rows, []string{
					f.ID.String(), f.FirmName, f.GSTNumber, f.Address,
					f.LogoPath, fmtTime(f.CreatedAt),
				})
			}
			return rows, nil
		},
		load: func(tx *gorm.DB, row []string) error {
			if len(row) < 6 {
				return fmt.Errorf("expected 6 columns")
			}
			id, err := uuid.Parse(row[0])
			if err != nil {
				return err
			}
			settings := models.FirmSettings{
				ID: id, FirmName: row[1], GSTNumber: row[2], Address: row[3],
				LogoPath: row[4], CreatedAt: parseTime(row[5]),
			}
			return tx.Create(&settings).Error
		},
	},
}

func fmtFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Now().UTC()
	}
	return t
}
