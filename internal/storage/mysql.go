package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"

	"rfhistoric/internal/domain"
)

// RootDatabase holds the TB_PROJECT table shared by all projects
const RootDatabase = "robothistoric"

const (
	databaseExistsSQL = "SELECT EXISTS(SELECT SCHEMA_NAME FROM INFORMATION_SCHEMA.SCHEMATA WHERE SCHEMA_NAME = ?)"

	insertExecutionSQL = "INSERT INTO TB_EXECUTION (Execution_Id, Execution_Date, Execution_Desc, " +
		"Execution_Total, Execution_Pass, Execution_Fail, Execution_Time, Execution_STotal, " +
		"Execution_SPass, Execution_SFail, Execution_Skip, Execution_SSkip) " +
		"VALUES (0, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	countExecutionsSQL = "SELECT COUNT(*) FROM TB_EXECUTION"

	updateProjectSQL = "UPDATE TB_PROJECT SET Last_Updated = ?, Total_Executions = ?, Recent_Pass_Perc = ? " +
		"WHERE Project_Name = ?"

	insertSuiteSQL = "INSERT INTO TB_SUITE (Suite_Id, Execution_Id, Suite_Name, Suite_Status, Suite_Total, " +
		"Suite_Pass, Suite_Fail, Suite_Time, Suite_Skip) VALUES (0, ?, ?, ?, ?, ?, ?, ?, ?)"

	insertTestSQL = "INSERT INTO TB_TEST (Test_Id, Execution_Id, Test_Name, Test_Status, Test_Time, " +
		"Test_Error, Test_Tag) VALUES (0, ?, ?, ?, ?, ?, ?)"
)

// MySQLConfig holds the connection settings of the MySQL storage
type MySQLConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	// Project is both the project database name and the TB_PROJECT row updated
	Project string
}

// MySQLStorage writes executions into the project database and keeps the
// project row in the robothistoric database up to date.
type MySQLStorage struct {
	cfg         MySQLConfig
	open        func(database string) (*sql.DB, error)
	now         func() time.Time
	newProgress ProgressFactory
}

// NewMySQLStorage creates a new MySQLStorage
func NewMySQLStorage(cfg MySQLConfig) *MySQLStorage {
	s := &MySQLStorage{
		cfg:         cfg,
		now:         time.Now,
		newProgress: noProgress,
	}
	s.open = s.openDatabase
	return s
}

// WithProgress reports suite and test inserts to the progress created by fn
func (s *MySQLStorage) WithProgress(fn ProgressFactory) *MySQLStorage {
	if fn != nil {
		s.newProgress = fn
	}
	return s
}

// DSN returns the data source name for database
func (s *MySQLStorage) DSN(database string) string {
	c := mysql.NewConfig()
	c.User = s.cfg.User
	c.Passwd = s.cfg.Password
	c.Net = "tcp"
	c.Addr = net.JoinHostPort(s.cfg.Host, strconv.Itoa(s.cfg.Port))
	c.DBName = database
	c.ParseTime = true
	return c.FormatDSN()
}

func (s *MySQLStorage) openDatabase(database string) (*sql.DB, error) {
	db, err := sql.Open("mysql", s.DSN(database))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database %s: %w", database, err)
	}
	return db, nil
}

// Save writes every report as a new execution of the project.
func (s *MySQLStorage) Save(ctx context.Context, reports []*domain.Report) error {
	if !isValidDatabaseName(s.cfg.Project) {
		return fmt.Errorf("invalid database name: %q", s.cfg.Project)
	}

	rootDB, err := s.open(RootDatabase)
	if err != nil {
		return err
	}
	defer rootDB.Close()

	if err := rootDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}

	exists, err := databaseExists(ctx, rootDB, s.cfg.Project)
	if err != nil {
		return fmt.Errorf("failed to check database %s: %w", s.cfg.Project, err)
	}
	if !exists {
		return fmt.Errorf("project database %s does not exist", s.cfg.Project)
	}

	projectDB, err := s.open(s.cfg.Project)
	if err != nil {
		return err
	}
	defer projectDB.Close()

	for _, report := range reports {
		id, err := s.saveExecution(ctx, projectDB, rootDB, report.Summary)
		if err != nil {
			return err
		}
		if err := s.saveResults(ctx, projectDB, id, report); err != nil {
			return err
		}
	}
	return nil
}

// saveExecution inserts the TB_EXECUTION row and refreshes the TB_PROJECT row.
func (s *MySQLStorage) saveExecution(ctx context.Context, projectDB, rootDB *sql.DB, summary domain.ExecutionSummary) (int64, error) {
	now := s.now().UTC()

	res, err := projectDB.ExecContext(ctx, insertExecutionSQL,
		now,
		summary.ExecutionName,
		summary.Total,
		summary.Passed,
		summary.Failed,
		summary.DurationMinutes,
		summary.SuiteTotal,
		summary.SuitePassed,
		summary.SuiteFailed,
		summary.Skipped,
		summary.SuiteSkipped,
	)
	if err != nil {
		return 0, fmt.Errorf("insert execution: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read execution id: %w", err)
	}
	log.Debugf("inserted execution %d into %s", id, s.cfg.Project)

	var executions int
	if err := projectDB.QueryRowContext(ctx, countExecutionsSQL).Scan(&executions); err != nil {
		return 0, fmt.Errorf("count executions: %w", err)
	}

	if _, err := rootDB.ExecContext(ctx, updateProjectSQL, now, executions, summary.PassPercentage(), s.cfg.Project); err != nil {
		return 0, fmt.Errorf("update project %s: %w", s.cfg.Project, err)
	}
	log.Debugf("project %s: %d executions, recent pass %.2f%%", s.cfg.Project, executions, summary.PassPercentage())

	return id, nil
}

// saveResults inserts the suite and test rows of one execution in a single transaction.
func (s *MySQLStorage) saveResults(ctx context.Context, db *sql.DB, executionID int64, report *domain.Report) error {
	if len(report.Suites) == 0 && len(report.Tests) == 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	progress := s.newProgress(len(report.Suites) + len(report.Tests))
	defer progress.Finish()

	for i, suite := range report.Suites {
		_, err := tx.ExecContext(ctx, insertSuiteSQL,
			executionID,
			suite.Name,
			suite.Status,
			suite.Total,
			suite.Passed,
			suite.Failed,
			suite.DurationMinutes,
			suite.Skipped,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert suite %s: %w", suite.Name, err)
		}
		progress.Update(i+1, 0)
	}

	for i, test := range report.Tests {
		_, err := tx.ExecContext(ctx, insertTestSQL,
			executionID,
			test.DisplayName,
			test.Status,
			test.DurationMinutes,
			test.Message,
			test.Tags,
		)
		if err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert test %s: %w", test.DisplayName, err)
		}
		progress.Update(len(report.Suites), i+1)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit execution %d: %w", executionID, err)
	}
	log.Debugf("execution %d: wrote %d suites and %d tests", executionID, len(report.Suites), len(report.Tests))
	return nil
}

// databaseExists checks if a database exists
func databaseExists(ctx context.Context, db *sql.DB, name string) (bool, error) {
	var exists bool
	err := db.QueryRowContext(ctx, databaseExistsSQL, name).Scan(&exists)
	return exists, err
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalid := []string{"'", "\"", "`", ";", "--", "/*", "*/", "\\"}
	for _, s := range invalid {
		if strings.Contains(name, s) {
			return false
		}
	}
	return true
}
