package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"guildhall.quest/internal/persistence/indexdb"
	persistlog "guildhall.quest/internal/persistence/log"
	"guildhall.quest/internal/persistence/save"
	"guildhall.quest/internal/sim/balance"
	"guildhall.quest/internal/sim/catalogs"
	"guildhall.quest/internal/sim/guild"
	"guildhall.quest/internal/transport/ws"
)

func main() {
	var (
		addr        = flag.String("addr", ":8080", "http listen address")
		seed        = flag.Int64("seed", 1337, "simulation seed for new sessions")
		configDir   = flag.String("configs", "./configs", "config directory")
		dataDir     = flag.String("data", "./data", "runtime data directory")
		balancePath = flag.String("balance", "", "path to balance.yaml (default: <configs>/balance.yaml)")
		disableDB   = flag.Bool("disable_db", false, "disable the sqlite step index")
	)
	flag.Parse()

	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lmicroseconds)

	bp := strings.TrimSpace(*balancePath)
	if bp == "" {
		bp = filepath.Join(*configDir, "balance.yaml")
	}
	prof, err := balance.Load(bp)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("balance not found (%s); using defaults", bp)
			prof = balance.Default()
		} else {
			logger.Fatalf("load balance: %v", err)
		}
	}

	cats, err := catalogs.Load(*configDir)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Printf("catalogs not found in %s; using builtin pools", *configDir)
			cats = catalogs.Builtin()
		} else {
			logger.Fatalf("load catalogs: %v", err)
		}
	}

	cfg := guild.Config{Balance: prof, Catalogs: cats}

	stepLog, err := persistlog.NewStepLogger(filepath.Join(*dataDir, "replays", "steps.jsonl.zst"))
	if err != nil {
		logger.Fatalf("open step log: %v", err)
	}
	defer stepLog.Close()

	var sink ws.StepSink = stepLog
	saver := &sessionSaver{dir: filepath.Join(*dataDir, "saves"), logger: logger}
	if !*disableDB {
		idx, err := indexdb.OpenSQLite(filepath.Join(*dataDir, "index.db"))
		if err != nil {
			logger.Fatalf("open index: %v", err)
		}
		defer idx.Close()
		sink = teeSink{stepLog, idx}
		saver.idx = idx
	}

	srv := ws.NewServer(cfg, *seed, sink, saver, logger)
	http.HandleFunc("/v1/ws", srv.Handler())

	logger.Printf("listening on %s (seed=%d)", *addr, *seed)
	if err := http.ListenAndServe(*addr, nil); err != nil {
		logger.Fatalf("serve: %v", err)
	}
}

// teeSink fans a step entry out to the JSONL log and the sqlite index.
type teeSink struct {
	log *persistlog.StepLogger
	idx *indexdb.SQLiteIndex
}

func (t teeSink) WriteStep(e persistlog.StepEntry) error {
	if err := t.log.WriteStep(e); err != nil {
		return err
	}
	return t.idx.WriteStep(e)
}

// sessionSaver writes each finished session's final state under the data
// directory and records the file in the sqlite index.
type sessionSaver struct {
	dir    string
	idx    *indexdb.SQLiteIndex // may be nil
	logger *log.Logger
}

func (sv *sessionSaver) WriteSave(st guild.State, draws uint64) {
	// Sessions are independent; the timestamp keeps same-revision saves from
	// different connections apart.
	name := fmt.Sprintf("%s-rev%06d.save.zst",
		time.Now().UTC().Format("20060102T150405"), st.Meta.Revision)
	path := filepath.Join(sv.dir, name)
	digest, err := save.WriteFile(path, st, draws)
	if err != nil {
		sv.logger.Printf("write save: %v", err)
		return
	}
	if sv.idx != nil {
		sv.idx.RecordSave(path, digest, st.Meta.Revision, st.Meta.Day, st.Meta.Seed)
	}
	sv.logger.Printf("saved %s (day=%d revision=%d)", path, st.Meta.Day, st.Meta.Revision)
}
