package cmd

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/achilleasa/parallax/asset/preset"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// Write the settings resulting from the preset and flags to a preset file.
func WritePreset(ctx *cli.Context) error {
	setupLogging(ctx)

	ps, err := readPreset(ctx)
	if err != nil {
		return err
	}

	cfg, err := layerConfig(ctx, ps)
	if err != nil {
		return err
	}

	settings := cfg.Preset()
	effects := effectSettings(ctx, ps)
	bloom := float64(effects.BloomIntensity)
	atmosphere := float64(effects.Atmosphere)
	ssaoIntensity := float64(effects.SSAOIntensity)
	ssaoRadius := float64(effects.SSAORadius)
	settings.BloomIntensity = &bloom
	settings.Atmosphere = &atmosphere
	settings.SSAOIntensity = &ssaoIntensity
	settings.SSAORadius = &ssaoRadius

	out := ctx.String("out")
	if err = preset.WriteFile(out, settings); err != nil {
		return err
	}
	logger.Noticef("wrote preset to %s", out)
	return nil
}

// Display the contents of a preset file.
func ShowPreset(ctx *cli.Context) error {
	setupLogging(ctx)

	if ctx.NArg() != 1 {
		return errors.New("missing preset file argument")
	}

	settings, err := preset.ReadFile(ctx.Args().First())
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Setting", "Value"})
	table.Append([]string{"backgroundCutoff", fmt.Sprintf("%.3f", settings.BackgroundCutoff)})
	table.Append([]string{"middlegroundCutoff", fmt.Sprintf("%.3f", settings.MiddlegroundCutoff)})
	table.Append([]string{"depthScale", fmt.Sprintf("%.3f", settings.DepthScale)})
	table.Append([]string{"layerBlending", fmt.Sprintf("%.3f", settings.LayerBlending)})
	table.Append([]string{"isStatic", fmt.Sprintf("%t", settings.IsStatic)})
	if settings.LayerCount != nil {
		table.Append([]string{"layerCount", fmt.Sprintf("%d", *settings.LayerCount)})
	}
	for _, opt := range []struct {
		name  string
		value *float64
	}{
		{"baseDepth", settings.BaseDepth},
		{"normalIntensity", settings.NormalIntensity},
		{"bloomIntensity", settings.BloomIntensity},
		{"atmosphere", settings.Atmosphere},
		{"ssaoIntensity", settings.SSAOIntensity},
		{"ssaoRadius", settings.SSAORadius},
	} {
		if opt.value != nil {
			table.Append([]string{opt.name, fmt.Sprintf("%.3f", *opt.value)})
		}
	}

	table.Render()
	logger.Noticef("preset %s\n%s", ctx.Args().First(), buf.String())
	return nil
}
