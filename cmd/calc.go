package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/marcus/genie/internal/config"
	"github.com/marcus/genie/internal/output"
	"github.com/marcus/genie/pkg/geometry"
	"github.com/marcus/genie/pkg/overlay"
)

var (
	_ pflag.Value = (*rectFlag)(nil)
	_ pflag.Value = (*sizeFlag)(nil)
)

// rectFlag is a pflag.Value holding an x,y,w,h cell rectangle.
type rectFlag struct {
	rect geometry.Rect
	set  bool
}

func (f *rectFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%d,%d,%d,%d", f.rect.X, f.rect.Y, f.rect.Width, f.rect.Height)
}

func (f *rectFlag) Set(s string) error {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		return fmt.Errorf("want x,y,w,h, got %q", s)
	}
	vals := make([]int, 4)
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return fmt.Errorf("bad coordinate %q in %q", p, s)
		}
		vals[i] = v
	}
	f.rect = geometry.NewRect(vals[0], vals[1], vals[2], vals[3])
	f.set = true
	return nil
}

func (f *rectFlag) Type() string { return "rect" }

// sizeFlag is a pflag.Value holding a WxH viewport size.
type sizeFlag struct {
	size geometry.Size
	set  bool
}

func (f *sizeFlag) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%dx%d", f.size.Width, f.size.Height)
}

func (f *sizeFlag) Set(s string) error {
	w, h, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return fmt.Errorf("want WxH, got %q", s)
	}
	width, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil || width <= 0 {
		return fmt.Errorf("bad width in %q", s)
	}
	height, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil || height <= 0 {
		return fmt.Errorf("bad height in %q", s)
	}
	f.size = geometry.Size{Width: width, Height: height}
	f.set = true
	return nil
}

func (f *sizeFlag) Type() string { return "size" }

var (
	calcAnchor   rectFlag
	calcViewport sizeFlag
	calcClip     rectFlag
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Compute overlay placement for an anchor",
	Long: `Compute where an overlay panel would open for an anchor rectangle inside a viewport, without running a UI.

Rectangles are x,y,w,h in cells and the viewport is WxH. Maximum dimensions accept the engine units: bare cells, px, %, vh, vw, rem and em.`,
	Example: `  genie calc --anchor 10,5,8,1 --viewport 100x40
  genie calc --anchor 10,30,8,1 --viewport 100x40 --clip 0,20,100,10 --max-width 60% --json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		jsonOutput, _ := cmd.Flags().GetBool("json")

		if !calcAnchor.set || !calcViewport.set {
			err := fmt.Errorf("both --anchor and --viewport are required")
			if jsonOutput {
				output.JSONError("missing_flags", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		viewport := calcViewport.size
		clip := geometry.NewRect(0, 0, viewport.Width, viewport.Height)
		if calcClip.set {
			clip = calcClip.rect
		}

		themeName, _ := cmd.Flags().GetString("theme")
		if themeName == "" {
			themeName, _ = config.GetTheme(getBaseDir())
		}
		th, ok := overlay.LookupTheme(themeName)
		if !ok {
			err := unknownThemeError(themeName)
			if jsonOutput {
				output.JSONError("unknown_theme", err.Error())
			} else {
				output.Error("%v", err)
			}
			return err
		}

		pos := overlay.ComputeClipped(calcAnchor.rect, viewport, clip)
		rep := output.NewPlacementReport(pos)

		rootFont, err := config.GetRootFontPx(getBaseDir())
		if err != nil {
			rootFont = overlay.DefaultRootFontPx
		}
		res := overlay.Resolver{
			ViewportWidth:  viewport.Width,
			ViewportHeight: viewport.Height,
			RootFontPx:     rootFont,
		}
		if maxWidth, _ := cmd.Flags().GetString("max-width"); maxWidth != "" {
			rep.MaxWidth = output.ConstraintFrom(res.ResolveMax(maxWidth, pos.AvailableWidth, overlay.AxisHorizontal))
		}
		if maxHeight, _ := cmd.Flags().GetString("max-height"); maxHeight != "" {
			rep.MaxHeight = output.ConstraintFrom(res.ResolveMax(maxHeight, pos.AvailableHeight, overlay.AxisVertical))
		}

		if jsonOutput {
			return output.JSON(rep)
		}

		fmt.Println(th.Frame(overlay.VariantDefault).Render(output.FormatPlacement(rep)))
		return nil
	},
}

// unknownThemeError names the closest registered theme when one comes
// close, or lists them all.
func unknownThemeError(name string) error {
	names := overlay.ThemeNames()
	if matches := fuzzy.Find(strings.ToLower(name), names); len(matches) > 0 {
		return fmt.Errorf("unknown theme %q (did you mean %q?)", name, matches[0].Str)
	}
	return fmt.Errorf("unknown theme %q (themes: %s)", name, strings.Join(names, ", "))
}

func init() {
	rootCmd.AddCommand(calcCmd)

	calcCmd.Flags().Var(&calcAnchor, "anchor", "Anchor rectangle as x,y,w,h cells")
	calcCmd.Flags().Var(&calcViewport, "viewport", "Viewport size as WxH cells")
	calcCmd.Flags().Var(&calcClip, "clip", "Clipping bounds as x,y,w,h cells (default: the whole viewport)")
	calcCmd.Flags().String("max-width", "", "Requested maximum panel width")
	calcCmd.Flags().String("max-height", "", "Requested maximum panel height")
	calcCmd.Flags().String("theme", "", "Theme framing the text output (default: configured theme)")
	calcCmd.Flags().Bool("json", false, "Machine-readable JSON")
}
