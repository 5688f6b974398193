package migration

import (
	alertdomain "github.com/aquacoop/aquacoop/internal/alert/domain"
	authdomain "github.com/aquacoop/aquacoop/internal/auth/domain"
	billdomain "github.com/aquacoop/aquacoop/internal/bill/domain"
	"github.com/aquacoop/aquacoop/internal/config"
	expensedomain "github.com/aquacoop/aquacoop/internal/expense/domain"
	meterreadingdomain "github.com/aquacoop/aquacoop/internal/meterreading/domain"
	organizationdomain "github.com/aquacoop/aquacoop/internal/organization/domain"
	paymentdomain "github.com/aquacoop/aquacoop/internal/payment/domain"
	profiledomain "github.com/aquacoop/aquacoop/internal/profile/domain"
	"github.com/aquacoop/aquacoop/internal/seed"
	settingdomain "github.com/aquacoop/aquacoop/internal/setting/domain"
	subscriberdomain "github.com/aquacoop/aquacoop/internal/subscriber/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			if err := autoMigrate(conn); err != nil {
				return err
			}
		}

		if cfg.DefaultOrgID != 0 {
			return seed.EnsureDefaultOrgWithID(conn, cfg.DefaultOrgID)
		}
		return seed.EnsureDefaultOrg(conn)
	}),
)

func autoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&organizationdomain.Organization{},
		&authdomain.User{},
		&profiledomain.Profile{},
		&subscriberdomain.Subscriber{},
		&meterreadingdomain.MeterReading{},
		&billdomain.Bill{},
		&paymentdomain.Payment{},
		&expensedomain.Expense{},
		&alertdomain.Alert{},
		&settingdomain.Setting{},
	)
}
