// Package booking parses booking desk flags and runs desk operations against
// the storyline heat engine.
package booking

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	entrypoint "github.com/louisbranch/heelturn.club/internal/platform/cmd"
	"github.com/louisbranch/heelturn.club/internal/services/booking/app"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/match"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/rivalry"
	"github.com/louisbranch/heelturn.club/internal/services/booking/domain/roster"
	"github.com/louisbranch/heelturn.club/internal/services/booking/notify"
	"github.com/louisbranch/heelturn.club/internal/services/booking/storage/sqlite"
)

// Config holds booking command configuration.
type Config struct {
	DBPath          string `env:"HEELTURN_BOOKING_DB_PATH" envDefault:"data/heelturn.club.db"`
	Locale          string `env:"HEELTURN_BOOKING_LOCALE"  envDefault:"en-US"`
	IntensityConfig string `env:"HEELTURN_BOOKING_INTENSITY_CONFIG"`

	// Args carries the subcommand and its flags, left over after global flags.
	Args []string
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "path to the booking sqlite database")
	fs.StringVar(&cfg.Locale, "locale", cfg.Locale, "locale for inbox notification copy")
	fs.StringVar(&cfg.IntensityConfig, "intensity-config", cfg.IntensityConfig, "path to a yaml intensity band table (default: built-in bands)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	cfg.Args = fs.Args()
	return cfg, nil
}

// Run executes one booking desk operation.
func Run(ctx context.Context, cfg Config, out io.Writer, errOut io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	if errOut == nil {
		errOut = io.Discard
	}
	if len(cfg.Args) == 0 {
		usage(errOut)
		return errors.New("a subcommand is required")
	}

	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBooking, func(ctx context.Context) error {
		store, err := openStore(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := store.Close(); err != nil {
				fmt.Fprintf(errOut, "close store: %v\n", err)
			}
		}()

		tag, err := language.Parse(cfg.Locale)
		if err != nil {
			tag = language.English
		}
		inbox := notify.NewInbox(store, notify.WithLocalizer(message.NewPrinter(tag)))

		opts := []app.Option{app.WithSink(inbox)}
		if cfg.IntensityConfig != "" {
			table, err := loadIntensityTable(cfg.IntensityConfig)
			if err != nil {
				return err
			}
			opts = append(opts, app.WithIntensityTable(table))
		}

		engine, err := app.New(app.Stores{
			Rivalries:        store,
			FactionRivalries: store,
			Feuds:            store,
			Branches:         store,
			Roster:           store,
		}, opts...)
		if err != nil {
			return err
		}

		desk := desk{engine: engine, inbox: inbox, store: store, out: out}
		return desk.dispatch(ctx, cfg.Args[0], cfg.Args[1:])
	})
}

type desk struct {
	engine *app.Engine
	inbox  *notify.Inbox
	store  *sqlite.Store
	out    io.Writer
}

func (d desk) dispatch(ctx context.Context, name string, args []string) error {
	switch name {
	case "add-wrestler":
		return d.addWrestler(ctx, args)
	case "add-faction":
		return d.addFaction(ctx, args)
	case "assign":
		return d.assign(ctx, args)
	case "heat":
		return d.heat(ctx, args)
	case "match":
		return d.match(ctx, args)
	case "escalate":
		return d.escalate(ctx, args)
	case "resolve":
		return d.resolve(ctx, args)
	case "storyline":
		return d.storyline(ctx, args)
	case "overview":
		return d.overview(ctx, args)
	case "hottest":
		return d.hottest(ctx, args)
	case "inbox":
		return d.inboxCmd(ctx, args)
	default:
		return fmt.Errorf("unknown subcommand %q", name)
	}
}

func (d desk) addWrestler(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-wrestler", flag.ContinueOnError)
	id := fs.String("id", "", "wrestler id")
	name := fs.String("name", "", "wrestler display name")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *name == "" {
		return errors.New("-id and -name are required")
	}
	if err := d.store.PutWrestler(ctx, roster.Wrestler{ID: *id, Name: *name}); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "wrestler %s (%s) saved\n", *name, *id)
	return nil
}

func (d desk) addFaction(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("add-faction", flag.ContinueOnError)
	id := fs.String("id", "", "faction id")
	name := fs.String("name", "", "faction display name")
	alignment := fs.String("alignment", "face", "crowd alignment (face, heel, tweener)")
	inactive := fs.Bool("inactive", false, "register the faction as disbanded")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *id == "" || *name == "" {
		return errors.New("-id and -name are required")
	}
	parsed, err := parseAlignment(*alignment)
	if err != nil {
		return err
	}
	faction := roster.Faction{ID: *id, Name: *name, Alignment: parsed, Active: !*inactive}
	if err := d.store.PutFaction(ctx, faction); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "faction %s (%s) saved\n", *name, *id)
	return nil
}

func (d desk) assign(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("assign", flag.ContinueOnError)
	wrestlerID := fs.String("wrestler", "", "wrestler id")
	factionID := fs.String("faction", "", "faction id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wrestlerID == "" || *factionID == "" {
		return errors.New("-wrestler and -faction are required")
	}
	if err := d.store.AssignWrestlerToFaction(ctx, *wrestlerID, *factionID); err != nil {
		return err
	}
	fmt.Fprintf(d.out, "%s assigned to %s\n", *wrestlerID, *factionID)
	return nil
}

func (d desk) heat(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("heat", flag.ContinueOnError)
	wrestlerA := fs.String("a", "", "first wrestler id")
	wrestlerB := fs.String("b", "", "second wrestler id")
	delta := fs.Int("delta", 0, "heat to add (negative cools the rivalry)")
	reason := fs.String("reason", "", "why the heat moved")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wrestlerA == "" || *wrestlerB == "" {
		return errors.New("-a and -b are required")
	}
	r, err := d.engine.AddHeatBetweenWrestlers(ctx, *wrestlerA, *wrestlerB, *delta, *reason)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "rivalry %s now at %d heat\n", r.ID, r.Heat)
	return nil
}

func (d desk) match(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	participants := fs.String("participants", "", "comma-separated wrestler ids")
	winner := fs.String("winner", "", "winning wrestler id (optional)")
	title := fs.Bool("title", false, "title match")
	stipulations := fs.Bool("stipulations", false, "stipulation match")
	rules := fs.String("rules", "", "match rules summary")
	if err := fs.Parse(args); err != nil {
		return err
	}

	outcome := match.Outcome{
		Participants: splitCSV(*participants),
		TitleMatch:   *title,
		Stipulations: *stipulations,
		WinnerID:     *winner,
		Rules:        *rules,
	}
	report, err := d.engine.ProcessMatchOutcome(ctx, outcome)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "match processed: %d rivalries, %d faction rivalries, %d feuds touched\n",
		len(report.RivalryIDs), len(report.FactionRivalryIDs), len(report.FeudIDs))
	return nil
}

func (d desk) escalate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("escalate", flag.ContinueOnError)
	rivalryID := fs.String("rivalry", "", "rivalry id")
	reason := fs.String("reason", "", "why the rivalry is escalating")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rivalryID == "" {
		return errors.New("-rivalry is required")
	}
	result, err := d.engine.EscalateRivalry(ctx, *rivalryID, *reason)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, result.Message)
	return nil
}

func (d desk) resolve(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("resolve", flag.ContinueOnError)
	kindName := fs.String("kind", "individual_rivalry", "ledger kind (individual_rivalry, faction_rivalry, multi_wrestler_feud)")
	ledgerID := fs.String("id", "", "ledger id")
	rollsCSV := fs.String("rolls", "", "comma-separated d20 rolls (missing rolls are drawn)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ledgerID == "" {
		return errors.New("-id is required")
	}
	kind, err := parseKind(*kindName)
	if err != nil {
		return err
	}
	rolls, err := parseRolls(*rollsCSV)
	if err != nil {
		return err
	}
	result, err := d.engine.AttemptResolution(ctx, kind, *ledgerID, rolls...)
	if err != nil {
		return err
	}
	fmt.Fprintln(d.out, result.Outcome.Message)
	return nil
}

func (d desk) storyline(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("storyline", flag.ContinueOnError)
	name := fs.String("name", "", "storyline name")
	members := fs.String("members", "", "comma-separated wrestler ids")
	description := fs.String("description", "", "storyline description")
	if err := fs.Parse(args); err != nil {
		return err
	}
	result, err := d.engine.CreateComplexStoryline(ctx, *name, splitCSV(*members), *description)
	if err != nil {
		return err
	}
	switch {
	case result.Feud != nil:
		fmt.Fprintf(d.out, "feud %s created with %d members\n", result.Feud.ID, len(result.Feud.ActiveMembers()))
	case result.Rivalry != nil:
		fmt.Fprintf(d.out, "rivalry %s created\n", result.Rivalry.ID)
	}
	if result.FactionRivalry != nil {
		fmt.Fprintf(d.out, "faction rivalry %s created\n", result.FactionRivalry.ID)
	}
	for _, hook := range result.Branches {
		fmt.Fprintf(d.out, "branch hook %q queued at priority %d\n", hook.Name, hook.Priority)
	}
	return nil
}

func (d desk) overview(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("overview", flag.ContinueOnError)
	wrestlerID := fs.String("wrestler", "", "wrestler id")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *wrestlerID == "" {
		return errors.New("-wrestler is required")
	}
	overview, err := d.engine.WrestlerOverview(ctx, *wrestlerID)
	if err != nil {
		return err
	}
	fmt.Fprintf(d.out, "%s (%s)\n", overview.Wrestler.Name, overview.Wrestler.ID)
	if overview.Faction != nil {
		fmt.Fprintf(d.out, "  faction: %s (%s)\n", overview.Faction.Name, overview.Faction.Alignment)
	}
	for _, r := range overview.Rivalries {
		fmt.Fprintf(d.out, "  rivalry %s vs %s: %d heat\n", r.WrestlerA, r.WrestlerB, r.Heat)
	}
	for _, fr := range overview.FactionRivalries {
		fmt.Fprintf(d.out, "  faction rivalry %s vs %s: %d heat\n", fr.FactionA, fr.FactionB, fr.Heat)
	}
	for _, feud := range overview.Feuds {
		fmt.Fprintf(d.out, "  feud %q: %d heat, %d active members\n", feud.Name, feud.Heat, len(feud.ActiveMembers()))
	}
	for _, hook := range overview.Branches {
		fmt.Fprintf(d.out, "  branch %q (priority %d)\n", hook.Name, hook.Priority)
	}
	return nil
}

func (d desk) hottest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("hottest", flag.ContinueOnError)
	limit := fs.Int("limit", 5, "number of rivalries to show")
	if err := fs.Parse(args); err != nil {
		return err
	}
	stats, err := d.engine.HottestRivalries(ctx, *limit)
	if err != nil {
		return err
	}
	for _, s := range stats {
		fmt.Fprintf(d.out, "%s: %d heat (%s)\n", s.RivalryID, s.Heat, s.Intensity)
	}
	return nil
}

func (d desk) inboxCmd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("inbox", flag.ContinueOnError)
	limit := fs.Int("limit", 10, "number of notifications to show")
	markRead := fs.String("read", "", "notification id to mark read")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *markRead != "" {
		if err := d.inbox.MarkRead(ctx, *markRead); err != nil {
			return err
		}
		fmt.Fprintf(d.out, "notification %s marked read\n", *markRead)
		return nil
	}
	records, err := d.inbox.Recent(ctx, *limit)
	if err != nil {
		return err
	}
	for _, record := range records {
		marker := " "
		if record.ReadAt != nil {
			marker = "*"
		}
		fmt.Fprintf(d.out, "%s [%s] %s\n", marker, record.ID, record.Message)
	}
	return nil
}

func usage(errOut io.Writer) {
	fmt.Fprintln(errOut, "usage: booking [flags] <subcommand> [subcommand flags]")
	fmt.Fprintln(errOut, "subcommands: add-wrestler, add-faction, assign, heat, match, escalate, resolve, storyline, overview, hottest, inbox")
}

func loadIntensityTable(path string) (rivalry.IntensityTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return rivalry.IntensityTable{}, fmt.Errorf("open intensity config: %w", err)
	}
	defer f.Close()
	table, err := rivalry.LoadIntensityTable(f)
	if err != nil {
		return rivalry.IntensityTable{}, fmt.Errorf("load intensity config: %w", err)
	}
	return table, nil
}

func openStore(path string) (*sqlite.Store, error) {
	cleanPath := filepath.Clean(path)
	if cleanPath == "." || cleanPath == "" {
		return nil, errors.New("db path is required")
	}
	if dir := filepath.Dir(cleanPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	store, err := sqlite.Open(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite store: %w", err)
	}
	return store, nil
}

func parseAlignment(raw string) (roster.Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "face":
		return roster.AlignmentFace, nil
	case "heel":
		return roster.AlignmentHeel, nil
	case "tweener":
		return roster.AlignmentTweener, nil
	default:
		return roster.AlignmentUnspecified, fmt.Errorf("unknown alignment %q (valid: face, heel, tweener)", raw)
	}
}

func parseKind(raw string) (rivalry.Kind, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "individual_rivalry", "rivalry":
		return rivalry.KindIndividual, nil
	case "faction_rivalry", "faction":
		return rivalry.KindFaction, nil
	case "multi_wrestler_feud", "feud":
		return rivalry.KindFeud, nil
	default:
		return rivalry.KindUnspecified, fmt.Errorf("unknown ledger kind %q", raw)
	}
}

func parseRolls(csv string) ([]int, error) {
	parts := splitCSV(csv)
	rolls := make([]int, 0, len(parts))
	for _, part := range parts {
		roll, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid roll %q", part)
		}
		rolls = append(rolls, roll)
	}
	return rolls, nil
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	output := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		output = append(output, trimmed)
	}
	return output
}
