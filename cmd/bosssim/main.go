package main

import (
	"context"
	"flag"
	"os"
	"os/signal"

	"github.com/milk9111/bossarena/prefabs"
	"github.com/sirupsen/logrus"
)

func main() {
	bossFile := flag.String("boss", "boss.yaml", "boss spec in prefabs/ (embedded copy used when missing on disk)")
	arenaFile := flag.String("arena", "arena.yaml", "arena spec in prefabs/")
	hz := flag.Float64("hz", 60, "simulation ticks per second")
	duration := flag.Float64("duration", 120, "simulated seconds before giving up")
	hitDamage := flag.Int("hit", 6, "damage per player hit")
	hitEvery := flag.Float64("hit-every", 0.75, "seconds between player hits (0 disables)")
	orbit := flag.Float64("orbit", 0.4, "target orbit speed in radians per second (0 keeps it still)")
	realtime := flag.Bool("realtime", false, "pace ticks to the wall clock")
	watch := flag.Bool("watch", false, "hot-reload prefabs/ while running (implies -realtime)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Parse()

	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if *debug {
		logger.SetLevel(logrus.DebugLevel)
	}
	log := logrus.NewEntry(logger).WithField("app", "bosssim")

	s, err := newSim(simOptions{
		BossFile:  *bossFile,
		ArenaFile: *arenaFile,
		HitDamage: *hitDamage,
		HitEvery:  *hitEvery,
		Orbit:     *orbit,
		Log:       log,
	})
	if err != nil {
		log.WithError(err).Fatal("bosssim: setup failed")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var watcher *prefabs.Watcher
	if *watch {
		watcher, err = prefabs.WatchPrefabs()
		if err != nil {
			log.WithError(err).Fatal("bosssim: watch prefabs")
		}
		defer watcher.Close()
		*realtime = true
	}

	result := s.run(ctx, runOptions{
		DT:       1 / *hz,
		Duration: *duration,
		Realtime: *realtime,
		Watcher:  watcher,
	})
	log.WithFields(result.Fields()).Info("bosssim: finished")
	if !result.Defeated {
		os.Exit(1)
	}
}
