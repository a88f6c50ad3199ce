package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dyuri/wldconv/internal/grid"
	"github.com/dyuri/wldconv/internal/model"
	"github.com/dyuri/wldconv/internal/text"
	"github.com/dyuri/wldconv/pkg/wldconv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "wldconv",
	Short: "Decode swd/wld strategy-game map files",
	Long: `wldconv decodes swd and wld map files into terrain, objects and
starting positions, translated to a triangular target grid.

The file layout is never guessed: pass --mode swd or --mode wld.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("mode", "swd", "Map layout: swd, wld")
	rootCmd.PersistentFlags().Bool("skip-bad-starts", false, "Drop starting positions outside the map instead of failing")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log every block")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Only log errors")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(dumpCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadMap reads the persistent flags and decodes the file
func loadMap(cmd *cobra.Command, path string) (*model.Map, error) {
	modeName, _ := cmd.Flags().GetString("mode")
	skip, _ := cmd.Flags().GetBool("skip-bad-starts")

	mode, err := wldconv.ParseMode(modeName)
	if err != nil {
		return nil, err
	}

	opts := wldconv.Options{
		Mode:        mode,
		StartPolicy: wldconv.StartStrict,
		Logger:      newLogger(cmd),
	}
	if skip {
		opts.StartPolicy = wldconv.StartSkip
	}

	m, err := wldconv.LoadFile(path, opts)
	if err != nil {
		return nil, fmt.Errorf("load map: %w", err)
	}
	return m, nil
}

func newLogger(cmd *cobra.Command) *logrus.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	quiet, _ := cmd.Flags().GetBool("quiet")

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	switch {
	case quiet:
		log.SetLevel(logrus.ErrorLevel)
	case verbose:
		log.SetLevel(logrus.DebugLevel)
	default:
		log.SetLevel(logrus.WarnLevel)
	}
	return log
}

// info command
var infoCmd = &cobra.Command{
	Use:   "info <map>",
	Short: "Display map information",
	Long: `Display metadata and object counts of a map file.

Shows title, author, size, players with their starting positions, and
counts of trees, stones, minerals and animals.`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	infoCmd.Flags().Bool("json", false, "Output as JSON")
	infoCmd.Flags().Bool("brief", false, "Show only summary")
}

func runInfo(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	jsonOutput, _ := cmd.Flags().GetBool("json")
	brief, _ := cmd.Flags().GetBool("brief")

	m, err := loadMap(cmd, inputPath)
	if err != nil {
		return err
	}

	if jsonOutput {
		return outputInfoJSON(inputPath, m)
	}
	outputInfoText(inputPath, m, brief)
	return nil
}

func outputInfoText(path string, m *model.Map, brief bool) {
	h := &m.Header
	s := m.Summarize()

	if brief {
		fmt.Printf("%s: %q %dx%d players=%d starts=%d trees=%d stones=%d\n",
			path, h.Title, h.Width, h.Height, h.MaxPlayers, len(h.Starts), s.Trees, s.Stones)
		return
	}

	fmt.Printf("Map File: %s\n", path)
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println()

	fmt.Println("Header:")
	fmt.Printf("  Title:            %s\n", h.Title)
	fmt.Printf("  Author:           %s\n", h.Author)
	fmt.Printf("  Terrain:          %s\n", h.Terrain)
	fmt.Printf("  Size:             %d x %d\n", h.Width, h.Height)
	tw, th := m.TargetSize()
	fmt.Printf("  Target grid:      %d x %d\n", tw, th)
	fmt.Printf("  Unlimited play:   %t\n", h.UnlimitedPlay)
	fmt.Println()

	fmt.Println("Players:")
	for i := 0; i < h.MaxPlayers; i++ {
		fmt.Printf("  %d: %-12s file %s", i, h.PlayerFaces[i], h.RawStarts[i])
		if p, ok := startOf(h, i); ok {
			fmt.Printf(" -> %s", p)
		} else {
			fmt.Printf(" -> dropped")
		}
		fmt.Println()
	}
	fmt.Println()

	fmt.Println("Objects:")
	fmt.Printf("  Cells:            %d\n", s.Cells)
	fmt.Printf("  Trees:            %d\n", s.Trees)
	fmt.Printf("  Stones:           %d\n", s.Stones)
	fmt.Printf("  Decorations:      %d\n", s.Decorations)
	fmt.Printf("  Wild animals:     %d\n", s.WildAnimals)
	for _, kind := range []model.ResourceKind{model.ResourceCoal, model.ResourceIron, model.ResourceGold, model.ResourceGranite} {
		name := model.Resource{Kind: kind}.String()
		fmt.Printf("  %-18s%d\n", name+":", s.Minerals[kind])
	}
	if s.Unrecognized > 0 {
		fmt.Printf("  Unrecognized:     %d cells\n", s.Unrecognized)
	}
}

func startOf(h *model.Metadata, player int) (model.Point, bool) {
	for _, s := range h.Starts {
		if s.Player == player {
			return s.Position, true
		}
	}
	return model.Point{}, false
}

func outputInfoJSON(path string, m *model.Map) error {
	h := &m.Header
	s := m.Summarize()

	players := make([]map[string]interface{}, h.MaxPlayers)
	for i := range players {
		entry := map[string]interface{}{
			"face":      h.PlayerFaces[i].String(),
			"fileStart": []int{h.RawStarts[i].Col, h.RawStarts[i].Row},
		}
		if p, ok := startOf(h, i); ok {
			entry["start"] = []int{p.X, p.Y}
		}
		players[i] = entry
	}

	minerals := make(map[string]int)
	for kind, n := range s.Minerals {
		minerals[model.Resource{Kind: kind}.String()] = n
	}

	info := map[string]interface{}{
		"file":          path,
		"title":         h.Title,
		"author":        h.Author,
		"terrain":       h.Terrain.String(),
		"width":         h.Width,
		"height":        h.Height,
		"unlimitedPlay": h.UnlimitedPlay,
		"players":       players,
		"counts": map[string]interface{}{
			"cells":        s.Cells,
			"trees":        s.Trees,
			"stones":       s.Stones,
			"decorations":  s.Decorations,
			"wildAnimals":  s.WildAnimals,
			"minerals":     minerals,
			"unrecognized": s.Unrecognized,
		},
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(info)
}

// dump command
var dumpCmd = &cobra.Command{
	Use:   "dump <map>",
	Short: "Write the decoded map as text",
	Long: `Write the decoded map in a sectioned text format.

With --spots every cell is written with its target position and raw codes.`,
	Args: cobra.ExactArgs(1),
	RunE: runDump,
}

func init() {
	dumpCmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	dumpCmd.Flags().Bool("spots", false, "Include every cell")
}

func runDump(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	spots, _ := cmd.Flags().GetBool("spots")

	m, err := loadMap(cmd, inputPath)
	if err != nil {
		return err
	}

	output := os.Stdout
	if outputPath != "" {
		output, err = os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer output.Close()
	}

	return text.NewWriter(output, spots).Write(m)
}

// validate command
var validateCmd = &cobra.Command{
	Use:   "validate <map>",
	Short: "Validate a map file",
	Long: `Decode a map file and check the result.

Checks that every cell got exactly one target position, that every player
has a starting position, and reports unrecognized codes.`,
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Fail on warnings")
}

func runValidate(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	strict, _ := cmd.Flags().GetBool("strict")

	m, err := loadMap(cmd, inputPath)
	if err != nil {
		return err
	}

	v := newValidator(strict)
	v.validate(m, inputPath)
	v.printResults()

	if v.hasErrors() || (strict && v.hasWarnings()) {
		return fmt.Errorf("validation failed")
	}
	return nil
}

// validator holds validation state
type validator struct {
	strict   bool
	errors   []string
	warnings []string
	file     string
}

func newValidator(strict bool) *validator {
	return &validator{
		strict:   strict,
		errors:   make([]string, 0),
		warnings: make([]string, 0),
	}
}

func (v *validator) error(msg string, args ...interface{}) {
	v.errors = append(v.errors, fmt.Sprintf(msg, args...))
}

func (v *validator) warning(msg string, args ...interface{}) {
	v.warnings = append(v.warnings, fmt.Sprintf(msg, args...))
}

func (v *validator) hasErrors() bool {
	return len(v.errors) > 0
}

func (v *validator) hasWarnings() bool {
	return len(v.warnings) > 0
}

func (v *validator) validate(m *model.Map, file string) {
	v.file = file
	h := &m.Header

	if err := grid.Verify(m); err != nil {
		v.error("Placement: %v", err)
	}

	if want := h.Width * h.Height; len(m.Cells) != want {
		v.warning("Map has %d cells, %dx%d would be %d", len(m.Cells), h.Width, h.Height, want)
	}

	if len(h.Starts) < h.MaxPlayers {
		v.warning("Only %d of %d players have a starting position", len(h.Starts), h.MaxPlayers)
	}

	for i, face := range h.PlayerFaces {
		if !face.Known() {
			v.warning("Player %d: %s", i, face)
		}
	}

	if !h.Terrain.Known() {
		v.warning("Terrain: %s", h.Terrain)
	}

	v.validateCells(m.Cells)
}

func (v *validator) validateCells(cells []model.Cell) {
	unknown := make(map[string]int)
	for i := range cells {
		c := &cells[i]
		if !c.TextureBelow.Known() {
			unknown[c.TextureBelow.String()]++
		}
		if !c.TextureDownRight.Known() {
			unknown[c.TextureDownRight.String()]++
		}
		if !c.Resource.Known() {
			unknown[c.Resource.String()]++
		}
		if !c.Animal.Known() {
			unknown[c.Animal.String()]++
		}
		if !c.Site.Known() {
			unknown[c.Site.String()]++
		}
		if c.HasTree() && !c.Tree().Known() {
			unknown[c.Tree().String()]++
		}
		if d := c.Decoration(); !d.Known() {
			unknown[d.String()]++
		}
	}
	for what, n := range unknown {
		v.warning("%s on %d cells", what, n)
	}
}

func (v *validator) printResults() {
	fmt.Printf("Validating: %s\n", v.file)
	fmt.Println(strings.Repeat("=", 50))

	if len(v.errors) == 0 && len(v.warnings) == 0 {
		fmt.Println("✓ Valid map file - no issues found")
		return
	}

	if len(v.errors) > 0 {
		fmt.Printf("\nErrors (%d):\n", len(v.errors))
		for _, err := range v.errors {
			fmt.Printf("  ✗ %s\n", err)
		}
	}

	if len(v.warnings) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(v.warnings))
		for _, warn := range v.warnings {
			fmt.Printf("  ⚠ %s\n", warn)
		}
	}

	fmt.Println()
	if len(v.errors) > 0 {
		fmt.Printf("Validation failed: %d error(s)", len(v.errors))
		if len(v.warnings) > 0 {
			fmt.Printf(", %d warning(s)", len(v.warnings))
		}
		fmt.Println()
	} else if len(v.warnings) > 0 {
		fmt.Printf("Validation passed with %d warning(s)\n", len(v.warnings))
		if v.strict {
			fmt.Println("(use without --strict to ignore warnings)")
		}
	}
}

// version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("wldconv version %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
	},
}
