package commands

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/piyumals/stripstock/pkg/application/services"
	"github.com/piyumals/stripstock/pkg/domain/repositories"
	"github.com/piyumals/stripstock/pkg/infrastructure/repositories/gormdb"
	"github.com/piyumals/stripstock/pkg/infrastructure/repositories/memory"
	"github.com/piyumals/stripstock/pkg/infrastructure/repositories/xlsx"
)

// Config holds the shared persistence configuration for all commands
type Config struct {
	Backend    string // xlsx, sqlite or memory
	StockFile  string // xlsx backend: stock workbook path
	OrdersFile string // xlsx backend: orders workbook path
	DBFile     string // sqlite backend: database path
	Verbose    bool
}

// NewLogger builds the application logger. Verbose switches on debug
// level.
func NewLogger(verbose bool) *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// OpenRepositories wires the configured persistence backend
func OpenRepositories(config Config) (repositories.StockRepository, repositories.OrderRepository, error) {
	switch config.Backend {
	case "xlsx":
		stocks, err := xlsx.NewStockRepository(config.StockFile)
		if err != nil {
			return nil, nil, err
		}
		orders, err := xlsx.NewOrderRepository(config.OrdersFile)
		if err != nil {
			return nil, nil, err
		}
		return stocks, orders, nil
	case "sqlite":
		db, err := gorm.Open(sqlite.Open(config.DBFile), &gorm.Config{
			Logger: gormlogger.Default.LogMode(gormlogger.Silent),
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database %s: %w", config.DBFile, err)
		}
		stocks, err := gormdb.NewStockRepository(db)
		if err != nil {
			return nil, nil, err
		}
		orders, err := gormdb.NewOrderRepository(db)
		if err != nil {
			return nil, nil, err
		}
		return stocks, orders, nil
	case "memory":
		return memory.NewStockRepository(), memory.NewOrderRepository(), nil
	default:
		return nil, nil, fmt.Errorf("unsupported backend: %s (use xlsx, sqlite or memory)", config.Backend)
	}
}

// NewManager wires the full service stack for a command
func NewManager(config Config) (*services.OrderLifecycleManager, error) {
	stocks, orders, err := OpenRepositories(config)
	if err != nil {
		return nil, err
	}
	return services.NewOrderLifecycleManager(stocks, orders, NewLogger(config.Verbose)), nil
}
