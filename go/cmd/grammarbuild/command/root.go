// Copyright 2025 Supabase, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package command holds the grammarbuild CLI commands.
package command

import (
	"errors"
	"log/slog"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sparkfmt/sparkfmt/go/grammar/catalog"
	"github.com/sparkfmt/sparkfmt/go/grammar/pipeline"
	"github.com/sparkfmt/sparkfmt/go/tools/logutil"
	"github.com/sparkfmt/sparkfmt/go/tools/pathutil"
)

// buildCommand carries the resolved configuration shared by the root
// run and the watch subcommand.
type buildCommand struct {
	v      *viper.Viper
	cfg    pipeline.Config
	logger *slog.Logger
}

// Root creates the grammarbuild root command.
func Root() *cobra.Command {
	bc := &buildCommand{v: viper.New()}

	root := &cobra.Command{
		Use:   "grammarbuild",
		Short: "Build the Spark SQL ANTLR grammar for the JavaScript runtime",
		Long: `grammarbuild prepares the Spark SQL grammar for the JavaScript ANTLR
target: it strips the Java-only @header/@members regions, rewrites the
embedded predicates to the this.-call convention, runs the ANTLR tool,
injects the JavaScript predicate implementations into the generated
sources, and verifies that every required name is defined.

All paths default to fixed locations under the install root and can be
overridden by flags or an optional grammarbuild.yaml config file.`,
		Args:              cobra.NoArgs,
		PersistentPreRunE: bc.setup,
		RunE:              bc.run,
	}

	defaults := pipeline.DefaultConfig(pathutil.InstallRoot())
	fs := root.PersistentFlags()
	fs.String("grammar-dir", defaults.GrammarDir, "Directory holding the source .g4 grammar files")
	fs.String("staging-dir", defaults.StagingDir, "Directory receiving the transformed grammar copies")
	fs.String("generated-dir", defaults.GeneratedDir, "Directory receiving the generated JavaScript sources")
	fs.String("antlr-jar", defaults.AntlrJar, "Path to the ANTLR tool jar")
	fs.String("java", defaults.JavaPath, "Java executable used to run the ANTLR jar")
	logutil.RegisterFlags(fs)

	root.AddCommand(watchCommand(bc))
	return root
}

func (bc *buildCommand) setup(cmd *cobra.Command, args []string) error {
	// Silence usage for application errors; flag errors still show it.
	cmd.SilenceUsage = true

	if err := bc.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	bc.v.SetConfigName("grammarbuild")
	bc.v.AddConfigPath(".")
	bc.v.AddConfigPath(pathutil.InstallRoot())
	if err := bc.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return err
		}
	}

	bc.logger = logutil.Setup(bc.v.GetString("log-level"), bc.v.GetString("log-format"))
	bc.cfg = pipeline.Config{
		GrammarDir:   bc.v.GetString("grammar-dir"),
		StagingDir:   bc.v.GetString("staging-dir"),
		GeneratedDir: bc.v.GetString("generated-dir"),
		AntlrJar:     bc.v.GetString("antlr-jar"),
		JavaPath:     bc.v.GetString("java"),
	}
	return nil
}

func (bc *buildCommand) run(cmd *cobra.Command, args []string) error {
	cat, err := catalog.Load()
	if err != nil {
		return err
	}
	fs := afero.NewOsFs()
	gen := pipeline.NewAntlrGenerator(fs, bc.cfg, bc.logger)
	return pipeline.NewDriver(fs, bc.cfg, cat, gen, bc.logger).Run(cmd.Context())
}
