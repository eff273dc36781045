package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/NamanBalaji/etaprogress/internal/errors"
	"github.com/NamanBalaji/etaprogress/internal/fetch"
	"github.com/NamanBalaji/etaprogress/internal/filesystem"
	"github.com/NamanBalaji/etaprogress/internal/logger"
	pkghttp "github.com/NamanBalaji/etaprogress/pkg/http"
	"github.com/NamanBalaji/etaprogress/pkg/progress"
)

var (
	ignoreLength  bool
	wgetEvery     int
	outputPath    string
	overwrite     bool
	limitRate     int64
	userAgent     string
	headerTimeout time.Duration
)

var wgetCmd = &cobra.Command{
	Use:   "wget <url>",
	Short: "Download a URL showing a wget style bar",
	Long: `Downloads url and shows a wget style progress bar. The body is discarded
unless --output names a file to write it to. The file is only created once the
server has answered with a success status.`,
	Args: cobra.ExactArgs(1),
	RunE: runWget,
}

func init() {
	wgetCmd.Flags().BoolVar(&ignoreLength, "ignore-length", false, "ignore the Content-Length header")
	wgetCmd.Flags().IntVar(&wgetEvery, "every", 4, "recompute the ETA every n updates")
	wgetCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the body to this file")
	wgetCmd.Flags().BoolVarP(&overwrite, "force", "f", false, "overwrite the output file if it exists")
	wgetCmd.Flags().Int64Var(&limitRate, "limit-rate", 0, "cap the download at this many bytes per second, 0 for no limit")
	wgetCmd.Flags().StringVarP(&userAgent, "user-agent", "U", pkghttp.DefaultUserAgent, "User-Agent header to send")
	wgetCmd.Flags().DurationVar(&headerTimeout, "timeout", 0, "wait at most this long for response headers, 0 for the default")
	rootCmd.AddCommand(wgetCmd)
}

func runWget(cmd *cobra.Command, args []string) error {
	if headerTimeout < 0 {
		return errors.NewInputError(fmt.Errorf("--timeout must not be negative, got %s", headerTimeout), uuid.Nil)
	}

	opts, err := barOptions(cfg, false)
	if err != nil {
		return err
	}
	opts = append(opts, progress.WithEvery(wgetEvery))

	clientOpts := []pkghttp.ClientOption{pkghttp.WithUserAgent(userAgent)}
	if headerTimeout > 0 {
		clientOpts = append(clientOpts, pkghttp.WithHeaderTimeout(headerTimeout))
	}

	fetchOpts := fetch.Options{
		IgnoreLength: ignoreLength,
		Output:       cmd.OutOrStdout(),
		Interval:     cfg.RefreshInterval,
		Bar:          opts,
		LimitRate:    limitRate,
		Client:       pkghttp.NewClient(clientOpts...),
	}

	var file io.WriteCloser
	if outputPath != "" {
		if !overwrite {
			exists, err := filesystem.Exists(outputPath)
			if err != nil {
				return errors.NewIOError(err, uuid.Nil)
			}
			if exists {
				return errors.NewIOError(fmt.Errorf("%w: %s", filesystem.ErrExists, outputPath), uuid.Nil)
			}
		}

		fetchOpts.OpenSink = func() (io.Writer, error) {
			f, err := filesystem.Create(outputPath, overwrite)
			if err != nil {
				return nil, err
			}
			file = f

			return f, nil
		}
	}

	n, err := fetch.Run(cmd.Context(), args[0], fetchOpts)
	if file != nil {
		if cerr := file.Close(); cerr != nil {
			logger.Warnf("Failed to close %s: %v", outputPath, cerr)
		}
	}
	if err != nil {
		return err
	}

	logger.Infof("Downloaded %d bytes from %s", n, args[0])

	return nil
}
