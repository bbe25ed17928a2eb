package cmd

import (
	"errors"

	"github.com/ArnaudCalmettes/dotscreen/bot"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var token string

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the Discord bot.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if token != "" {
			viper.Set(keyToken, token)
		}
		settings, err := botSettings(viper.GetViper())
		if err != nil {
			return err
		}
		return bot.Run(settings, loggerFromContext(cmd.Context()))
	},
}

func botSettings(v *viper.Viper) (bot.Settings, error) {
	c, err := halftoneConfig(v)
	if err != nil {
		return bot.Settings{}, err
	}
	mode, filter, err := renderSettings(v)
	if err != nil {
		return bot.Settings{}, err
	}
	s := bot.Settings{
		Token:     v.GetString(keyToken),
		DB:        v.GetString("db"),
		Prefix:    v.GetString(keyPrefix),
		Defaults:  c,
		Raster:    mode,
		Filter:    filter,
		MaxPixels: v.GetInt(keyMaxPixels),
	}
	if s.Token == "" {
		return s, errors.New("missing discord token (--token, bot.token or DOTSCREEN_BOT_TOKEN)")
	}
	return s, nil
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&token, "token", "t", "", "discord token")
	runCmd.Flags().String("prefix", ".", "command prefix")
	viper.BindPFlag(keyPrefix, runCmd.Flags().Lookup("prefix"))
}
