package cmd

import (
	"os"

	"github.com/ArnaudCalmettes/dotscreen/halftone"
	"github.com/ArnaudCalmettes/dotscreen/models"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// paramsCmd represents the params command
var paramsCmd = &cobra.Command{
	Use:   "params",
	Short: "Show the halftone parameters resolved from config, env and defaults",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := halftoneConfig(viper.GetViper())
		if err != nil {
			return err
		}
		return models.WriteTable(os.Stdout, c, halftone.DefaultConfig())
	},
}

func init() {
	rootCmd.AddCommand(paramsCmd)
}
