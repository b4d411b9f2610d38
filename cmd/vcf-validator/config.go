package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vcfval/vcf-validator/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vcf-validator configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vcf-validator.yaml.",
		Example: `  vcf-validator config                          # show all config
  vcf-validator config set ploidy.default 2     # set the default ploidy
  vcf-validator config get ploidy.default       # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out, err := config.Show()
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFile, err := config.Set(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Printf("Set %s = %s in %s\n", args[0], args[1], cfgFile)
			return nil
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			val, err := config.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(val)
			return nil
		},
	}
}
