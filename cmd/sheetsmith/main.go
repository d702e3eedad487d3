// Package main provides the sheetsmith CLI: it wires configuration, storage,
// and the merged catalog, then runs one sheet operation per invocation.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/encore-rpg/sheetsmith/internal/config"
	"github.com/encore-rpg/sheetsmith/internal/game/catalog"
	"github.com/encore-rpg/sheetsmith/internal/game/character"
	"github.com/encore-rpg/sheetsmith/internal/game/derive"
	"github.com/encore-rpg/sheetsmith/internal/history"
	"github.com/encore-rpg/sheetsmith/internal/observability"
	"github.com/encore-rpg/sheetsmith/internal/session"
	"github.com/encore-rpg/sheetsmith/internal/share"
	"github.com/encore-rpg/sheetsmith/internal/storage"
	"github.com/encore-rpg/sheetsmith/internal/storage/memory"
	"github.com/encore-rpg/sheetsmith/internal/storage/postgres"
)

const usage = `usage: sheetsmith [-config path] [-sheet hero|diva] <command> [args]

commands:
  show               print the sheet and its derived stats
  validate           report creation-rule violations
  roll               reroll all six ability scores (2d10 each)
  money              apply the one-shot initial-money formula
  buy                purchase a catalog entry (-category -id -qty)
  export             write the sheet JSON (-out file, default stdout)
  import             replace the sheet from JSON (-in file)
  share              print the shareable URL
  decode             load a sheet from a share URL (-url)
  log                append a history snapshot (-message, -tags a,b)
  history            list history entries
  restore            restore a history entry (-id)
  forget             delete a history entry (-id)
  retag              replace a history entry's tags (-id -tags a,b)
  clear-history      wipe the sheet type's history
`

func main() {
	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	sheetName := flag.String("sheet", "hero", "sheet type: hero or diva")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(2)
	}
	command := flag.Arg(0)
	args := flag.Args()[1:]

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	sheetType, err := session.ParseSheetType(*sheetName)
	if err != nil {
		logger.Fatal("invalid sheet type", zap.Error(err))
	}

	ctx := context.Background()
	app, err := newApp(ctx, &cfg, logger)
	if err != nil {
		logger.Fatal("initializing", zap.Error(err))
	}
	defer app.Close()

	if err := app.run(ctx, sheetType, command, args); err != nil {
		logger.Fatal("command failed", zap.String("command", command), zap.Error(err))
	}
}

// app bundles the wired collaborators of one CLI invocation.
type app struct {
	cfg    *config.Config
	logger *zap.Logger
	store  storage.Store
	cat    *catalog.Catalog
	codec  *share.Codec
	log    *history.Log
	pool   *postgres.Pool
}

func newApp(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*app, error) {
	a := &app{
		cfg:    cfg,
		logger: logger,
		codec:  share.NewCodec(cfg.Share),
	}

	switch cfg.Storage.Backend {
	case "postgres":
		start := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Storage.Postgres)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		logger.Info("database connected",
			zap.String("host", cfg.Storage.Postgres.Host),
			zap.Duration("elapsed", time.Since(start)),
		)
		a.pool = pool
		a.store = postgres.NewBlobStore(pool.DB())
	default:
		a.store = memory.NewStore()
	}

	cat, err := loadCatalog(ctx, cfg, logger, a.store)
	if err != nil {
		return nil, err
	}
	a.cat = cat
	a.log = history.NewLog(a.store, logger, cfg.History)
	return a, nil
}

func (a *app) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
}

// loadCatalog runs the one-shot master load and merges in the user dataset.
// A failure here is terminal: nothing may run against an incomplete catalog.
func loadCatalog(ctx context.Context, cfg *config.Config, logger *zap.Logger, store storage.Store) (*catalog.Catalog, error) {
	start := time.Now()
	reg, err := catalog.LoadRegistry(cfg.Content.CatalogRegistry)
	if err != nil {
		return nil, err
	}
	master, err := catalog.LoadMaster(reg, filepath.Dir(cfg.Content.CatalogRegistry))
	if err != nil {
		return nil, err
	}
	user := session.LoadUserData(ctx, store, logger)

	cat, err := catalog.Build(master, user.Datasets(), reg)
	if err != nil {
		return nil, fmt.Errorf("building catalog: %w", err)
	}
	for _, d := range cat.Diagnostics {
		logger.Warn("catalog diagnostic", zap.String("detail", d.String()))
	}
	logger.Info("catalog loaded",
		zap.Int("categories", len(cat.Categories())),
		zap.Int("diagnostics", len(cat.Diagnostics)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return cat, nil
}

func (a *app) run(ctx context.Context, sheetType session.SheetType, command string, args []string) error {
	sess, err := session.Open(ctx, a.store, a.logger, sheetType)
	if err != nil {
		return err
	}

	switch command {
	case "show":
		return a.show(sess)
	case "validate":
		return a.validate(sess)
	case "roll":
		return a.roll(ctx, sess)
	case "money":
		if err := sess.SetInitialMoney(); err != nil {
			return err
		}
		fmt.Printf("money set to %d\n", sess.State().Money)
		return sess.Save(ctx)
	case "buy":
		return a.buy(ctx, sess, args)
	case "export":
		return a.export(sess, args)
	case "import":
		return a.importSheet(ctx, sess, args)
	case "share":
		return a.share(sess)
	case "decode":
		return a.decode(ctx, sess, args)
	case "log":
		return a.appendHistory(ctx, sess, args)
	case "history":
		return a.listHistory(ctx, sheetType)
	case "restore":
		return a.restore(ctx, sess, args)
	case "forget":
		return a.forget(ctx, sheetType, args)
	case "retag":
		return a.retag(ctx, sheetType, args)
	case "clear-history":
		return a.log.Clear(ctx, string(sheetType))
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) show(sess *session.Session) error {
	st := sess.State()
	stats := derive.Compute(st, a.cat)

	fmt.Printf("%s (%s) player %s\n", orUnnamed(st.Basic.Name), sess.SheetType(), orUnnamed(st.Basic.Player))
	fmt.Printf("abilities:")
	for _, ab := range character.Abilities {
		fmt.Printf(" %s %d (%+d)", ab, st.Abilities.Score(ab), stats.Modifiers[ab])
	}
	fmt.Println()
	fmt.Printf("hp %d/%d  mp %d  melee %+d  ranged %+d  resist %+d\n",
		stats.HPNormal, stats.HPWound, stats.MP, stats.Melee, stats.Ranged, stats.Resist)
	fmt.Printf("evasion %d  defense %d  money %d\n", stats.Evasion, stats.Defense, st.Money)

	for _, sv := range stats.Skills {
		fmt.Printf("  skill %-24s %d\n", orUnnamed(sv.Name), sv.Value)
	}
	for _, wh := range stats.WeaponHits {
		note := ""
		if !wh.RequirementMet {
			note = "  (requirement not met)"
		}
		fmt.Printf("  %-12s %-24s hit %+d%s\n", wh.Slot, wh.Name, wh.Hit, note)
	}
	return nil
}

func (a *app) validate(sess *session.Session) error {
	issues := character.Validate(sess.State(), true)
	if len(issues) == 0 {
		fmt.Println("sheet is valid")
		return nil
	}
	for _, issue := range issues {
		fmt.Println(issue)
	}
	fmt.Printf("%d issue(s); editing is not blocked\n", len(issues))
	return nil
}

func (a *app) roll(ctx context.Context, sess *session.Session) error {
	err := sess.Apply(func(st *character.State) error {
		st.RollAbilities(character.NewCryptoSource())
		return nil
	})
	if err != nil {
		return err
	}
	st := sess.State()
	for _, ab := range character.Abilities {
		fmt.Printf("%s %d  ", ab, st.Abilities.Score(ab))
	}
	fmt.Println()
	return sess.Save(ctx)
}

func (a *app) buy(ctx context.Context, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("buy", flag.ExitOnError)
	category := fs.String("category", "item", "catalog category")
	id := fs.Int("id", 0, "catalog id")
	qty := fs.Int("qty", 1, "quantity")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := sess.Purchase(a.cat, *category, *id, *qty); err != nil {
		return err
	}
	fmt.Printf("bought %d × %s:%d, %d money left\n", *qty, *category, *id, sess.State().Money)
	return sess.Save(ctx)
}

func (a *app) export(sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	out := fs.String("out", "", "output file (default stdout)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	raw, err := sess.Export()
	if err != nil {
		return err
	}
	if *out == "" {
		fmt.Println(string(raw))
		return nil
	}
	return os.WriteFile(*out, raw, 0o644)
}

func (a *app) importSheet(ctx context.Context, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	in := fs.String("in", "", "input file")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *in == "" {
		return fmt.Errorf("import requires -in")
	}
	raw, err := os.ReadFile(*in)
	if err != nil {
		return err
	}
	if err := sess.Import(raw); err != nil {
		return err
	}
	return sess.Save(ctx)
}

func (a *app) share(sess *session.Session) error {
	enc, err := a.codec.Encode(sess.State())
	if err != nil {
		return err
	}
	fmt.Println(enc.URL)
	if enc.Oversize {
		fmt.Fprintf(os.Stderr, "warning: url is %d characters, longer than %d; some clients may truncate it\n",
			len(enc.URL), a.cfg.Share.WarnLength)
	}
	return nil
}

func (a *app) decode(ctx context.Context, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	rawURL := fs.String("url", "", "share url")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *rawURL == "" {
		return fmt.Errorf("decode requires -url")
	}
	st, err := a.codec.DecodeURL(*rawURL)
	if err != nil {
		return err
	}
	sess.Replace(st)
	return sess.Save(ctx)
}

func (a *app) appendHistory(ctx context.Context, sess *session.Session, args []string) error {
	fs := flag.NewFlagSet("log", flag.ExitOnError)
	message := fs.String("message", "", "log message")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	var tagList []string
	if *tags != "" {
		tagList = strings.Split(*tags, ",")
	}
	entry, err := a.log.Append(ctx, string(sess.SheetType()), sess.State(), *message, tagList)
	if err != nil {
		return err
	}
	fmt.Printf("logged %s\n", entry.ID)
	return nil
}

func (a *app) listHistory(ctx context.Context, sheetType session.SheetType) error {
	entries, err := a.log.List(ctx, string(sheetType))
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		fmt.Println("history is empty")
		return nil
	}
	for _, e := range entries {
		tags := ""
		if len(e.Tags) > 0 {
			tags = "  [" + strings.Join(e.Tags, ", ") + "]"
		}
		fmt.Printf("%s  %s  %s%s\n", e.ID, e.Timestamp.Format(time.RFC3339), e.Message, tags)
	}
	return nil
}

func (a *app) restore(ctx context.Context, sess *session.Session, args []string) error {
	id, err := parseEntryID("restore", args)
	if err != nil {
		return err
	}
	st, err := a.log.Restore(ctx, string(sess.SheetType()), id)
	if err != nil {
		return err
	}
	sess.Replace(st)
	return sess.Save(ctx)
}

func (a *app) forget(ctx context.Context, sheetType session.SheetType, args []string) error {
	id, err := parseEntryID("forget", args)
	if err != nil {
		return err
	}
	return a.log.Delete(ctx, string(sheetType), id)
}

func (a *app) retag(ctx context.Context, sheetType session.SheetType, args []string) error {
	fs := flag.NewFlagSet("retag", flag.ExitOnError)
	raw := fs.String("id", "", "history entry id")
	tags := fs.String("tags", "", "comma-separated tags")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *raw == "" {
		return fmt.Errorf("retag requires -id")
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return fmt.Errorf("parsing entry id: %w", err)
	}
	var tagList []string
	if *tags != "" {
		tagList = strings.Split(*tags, ",")
	}
	return a.log.UpdateTags(ctx, string(sheetType), id, tagList)
}

func parseEntryID(command string, args []string) (uuid.UUID, error) {
	fs := flag.NewFlagSet(command, flag.ExitOnError)
	raw := fs.String("id", "", "history entry id")
	if err := fs.Parse(args); err != nil {
		return uuid.Nil, err
	}
	if *raw == "" {
		return uuid.Nil, fmt.Errorf("%s requires -id", command)
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("parsing entry id: %w", err)
	}
	return id, nil
}

func orUnnamed(s string) string {
	if s == "" {
		return "(unnamed)"
	}
	return s
}
