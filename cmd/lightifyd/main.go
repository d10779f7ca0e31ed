package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"gopkg.in/natefinch/lumberjack.v2"

	"lightify/internal/concurrency"
	"lightify/internal/config"
	"lightify/internal/gateway"
	"lightify/internal/schedule"
)

// minimum gap between consecutive commands when sweeping every light
const commandPace = 100 * time.Millisecond

func main() {

	logger := log.NewWithOptions(&lumberjack.Logger{
		Filename: "logs/lightifyd.log",
		MaxAge:   3,
	}, log.Options{
		Level:      log.InfoLevel,
		TimeFormat: "2006/01/02 15:04:05",
	})
	logger.Info("lightifyd starting")

	// read the config file
	cfg, err := config.ReadConfig()
	if err != nil {
		logger.Fatal(err)
	}

	// open the gateway session
	session, err := gateway.Connect(*cfg, logger)
	if err != nil {
		logger.Fatal(err)
	}
	defer session.Close()

	ss := schedule.NewScheduleService(*cfg, logger)

	pollTimer := time.NewTicker(cfg.PollInterval())
	defer pollTimer.Stop()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)

	// poll straight away, then on the ticker
	poll(session, ss, *cfg, logger)

	for {
		select {
		case <-quitChannel:
			logger.Info("lightifyd is closing")
			return

		case <-pollTimer.C:
			poll(session, ss, *cfg, logger)
		}
	}
}

func poll(session *gateway.Session, ss *schedule.ScheduleService, cfg config.Config, logger *log.Logger) {

	if err := session.RefreshGroups(); err != nil {
		logger.Error(err)
		return
	}
	if err := session.RefreshAllLightStatus(); err != nil {
		logger.Error(err)
		return
	}
	logger.Info("polled gateway", "lights", len(session.Lights()), "groups", len(session.Groups()))

	if !cfg.Schedule.Enabled {
		return
	}

	now := time.Now()
	target := ss.GetIntervalForTime(now).CalculateTargetLightState(now)
	logger.Info("applying schedule target", "luminance", target.Luminance, "temperature", target.Temperature)

	worker := concurrency.NewThrottledWorker(commandPace, func(addr uint64) error {
		light, ok := session.Lights()[addr]
		if !ok || !light.Online {
			return nil
		}
		luminary := session.LightLuminary(light)
		if err := luminary.SetTemperature(uint16(target.Temperature), cfg.Transition()); err != nil {
			logger.Error("setting temperature", "light", light.Name, "err", err)
			return err
		}
		if err := luminary.SetLuminance(uint8(target.Luminance), cfg.Transition()); err != nil {
			logger.Error("setting luminance", "light", light.Name, "err", err)
			return err
		}
		return nil
	})
	worker.Run(lo.Keys(session.Lights()))
}
