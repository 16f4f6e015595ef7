// Command mdaltranslate loads a mesh from one URI and saves it through
// a driver that supports writing, per spec.md §6's exit-code contract:
// 0 on success, 1 on load or save failure.
package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mdal-go/mdal/internal/mdallog"
	"github.com/mdal-go/mdal/internal/registry"
)

var (
	logLevel   string
	outDriver  string
)

var rootCmd = &cobra.Command{
	Use:   "mdaltranslate <input-uri> <output-path>",
	Short: "Translate a mesh file from one MDAL-supported format to another",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", logLevel, err)
		}
		logrus.SetLevel(level)
		mdallog.SetSink(mdallog.NewLogrusSink(nil))

		m := registry.NewManager()

		mesh, err := m.Load(args[0])
		if err != nil {
			return fmt.Errorf("loading %s: %w", args[0], err)
		}
		defer mesh.Close()

		if err := m.LoadDatasets(args[0], mesh); err != nil {
			logrus.Debugf("no extra dataset file recognised for %s: %v", args[0], err)
		}

		outURI := args[1]
		if outDriver != "" {
			outURI = fmt.Sprintf("%s:%q", outDriver, args[1])
		}
		if err := m.Save(outURI, mesh); err != nil {
			return fmt.Errorf("saving %s: %w", args[1], err)
		}

		logrus.Infof("translated %s (%s) -> %s", args[0], mesh.DriverName(), args[1])
		return nil
	},
}

func init() {
	rootCmd.Flags().StringVar(&logLevel, "log", "warn", "Log level (debug, info, warn, error)")
	rootCmd.Flags().StringVar(&outDriver, "driver", "", "Output driver name (defaults to the mesh's own driver)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
