package cmd

import (
	"fmt"

	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// migrateCmd represents the migrate command
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Perform automatic database migration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return migrateDB(viper.GetString("db"))
	},
}

func migrateDB(path string) error {
	db, err := gorm.Open("sqlite3", path)
	if err != nil {
		return fmt.Errorf("couldn't open %s: %w", path, err)
	}
	defer db.Close()
	if err := models.Migrate(db); err != nil {
		return err
	}
	logger.Info("Database migrated", "db", path)
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
