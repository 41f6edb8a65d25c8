package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/telegen/telegen"
	"github.com/telegen/telegen/internal/fetch"
	"github.com/telegen/telegen/schema"
	"github.com/telegen/telegen/sink"
)

type CLI struct {
	JSON bool `help:"Log in JSON instead of console format." name:"json"`

	Version VersionCmd `cmd:"" help:"Print version information."`
	Gen     GenCmd     `cmd:"" help:"Generate the Python models and client modules."`
	Check   CheckCmd   `cmd:"" help:"Parse and validate the schema without writing files."`
}

type VersionCmd struct{}

func (c *VersionCmd) Run(*zap.SugaredLogger) error {
	fmt.Println(Version())
	return nil
}

type schemaFlags struct {
	Input string `help:"Read the schema from a local JSON file instead of fetching." type:"existingfile" short:"i"`
	URL   string `help:"Schema URL to fetch when --input is not given." default:"${schema_url}"`
}

// load returns the raw schema document from the configured source.
func (f *schemaFlags) load(ctx context.Context, log *zap.SugaredLogger) ([]byte, error) {
	if f.Input != "" {
		log.Infow("reading schema", "path", f.Input)
		return os.ReadFile(f.Input)
	}
	return fetch.New(log).Schema(ctx, f.URL)
}

type GenCmd struct {
	schemaFlags

	Out      string `arg:"" help:"Output directory for the generated Python modules."`
	Package  string `help:"Python package name used in generated imports." default:"api_types"`
	Models   string `help:"Module name of the generated models file, without extension." default:"objects"`
	BaseURL  string `help:"API base address baked into the client." default:"https://api.telegram.org/"`
	Reserved string `help:"TOML file overriding the reserved-word table." type:"existingfile"`
}

func (c *GenCmd) Run(log *zap.SugaredLogger) error {
	ctx := context.Background()

	data, err := c.load(ctx, log)
	if err != nil {
		return err
	}
	parsed, err := schema.Parse(data)
	if err != nil {
		return err
	}
	log.Infow("schema parsed", "objects", len(parsed.Objects), "methods", len(parsed.Methods))

	cfg := &telegen.Config{
		PackageName: c.Package,
		ModelModule: c.Models,
		BaseURL:     c.BaseURL,
	}
	if c.Reserved != "" {
		cfg.ReservedWords, err = telegen.LoadReservedWords(c.Reserved)
		if err != nil {
			return err
		}
	}

	result, err := telegen.Generate(parsed, cfg)
	if err != nil {
		return err
	}
	for _, d := range result.Diagnostics {
		log.Warnw(d.Message, "code", d.Code, "object", d.ObjectName)
	}

	out := sink.NewFilesystemSink(c.Out)
	if err := out.WriteFile(ctx, telegen.ModelsFileName(cfg), []byte(telegen.RenderModelsFile(result, cfg))); err != nil {
		return err
	}
	if err := out.WriteFile(ctx, telegen.ClientFileName, []byte(telegen.RenderClientFile(result, cfg))); err != nil {
		return err
	}
	log.Infow("generation complete", "dir", c.Out, "skipped", len(result.Diagnostics))
	return nil
}

type CheckCmd struct {
	schemaFlags
}

func (c *CheckCmd) Run(log *zap.SugaredLogger) error {
	data, err := c.load(context.Background(), log)
	if err != nil {
		return err
	}
	parsed, err := schema.Parse(data)
	if err != nil {
		return err
	}

	result, err := telegen.Generate(parsed, nil)
	if err != nil {
		return err
	}
	diags := append(result.Diagnostics, parsed.DanglingReferences()...)
	for _, d := range diags {
		log.Warnw(d.Message, "code", d.Code, "object", d.ObjectName)
	}
	log.Infow("schema ok",
		"objects", len(parsed.Objects),
		"methods", len(parsed.Methods),
		"diagnostics", len(diags))
	return nil
}

func newLogger(jsonOutput bool) (*zap.Logger, error) {
	if jsonOutput {
		return zap.NewProduction()
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableCaller = true
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func main() {
	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("telegen"),
		kong.Description("Generate a typed Python Bot API client from the published schema."),
		kong.UsageOnError(),
		kong.Vars{"schema_url": fetch.DefaultURL},
	)

	logger, err := newLogger(cli.JSON)
	ctx.FatalIfErrorf(err)
	defer logger.Sync()

	err = ctx.Run(logger.Sugar())
	ctx.FatalIfErrorf(err)
}
