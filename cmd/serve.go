// Copyright 2025 Dimitrij Drus <dadrus@gmx.de>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/dadrus/reqkit/cmd/flags"
	"github.com/dadrus/reqkit/internal/handler/api"
	"github.com/dadrus/reqkit/internal/logging"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "serve",
		Short:   "Starts serving the notes API",
		Example: "reqkit serve -c config.yaml",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cmd)
		},
	}

	flags.RegisterGlobalFlags(cmd)

	return cmd
}

func serve(ctx context.Context, cmd *cobra.Command) error {
	conf, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := logging.NewLogger(conf.Log, os.Stdout)
	logger.Info().
		Str("_version", Version).
		Bool("_development", conf.Development).
		Msg("Starting reqkit")

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	service, err := api.NewService(conf, reg, reg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("Failed creating service")

		return err
	}

	errs := make(chan error, 1)

	go func() { errs <- service.Start(ctx) }()

	select {
	case err = <-errs:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	return service.Stop(shutdownCtx)
}
