package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"

	"lightify/internal/config"
	"lightify/internal/gateway"
	"lightify/internal/models"
)

const groupPrefix = "group:"

func main() {

	logger := log.NewWithOptions(os.Stderr, log.Options{Level: log.WarnLevel})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

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

	switch os.Args[1] {

	case "status":
		if err := session.RefreshAllLightStatus(); err != nil {
			logger.Fatal(err)
		}
		printLights(lo.Values(session.Lights()))

	case "groups":
		if err := session.RefreshAllLightStatus(); err != nil {
			logger.Fatal(err)
		}
		if err := session.RefreshGroups(); err != nil {
			logger.Fatal(err)
		}
		printGroups(session)

	case "on", "off":
		luminary := luminaryFor(session, arg(2), logger)
		if err := luminary.SetOnOff(os.Args[1] == "on"); err != nil {
			logger.Fatal(err)
		}

	case "lum":
		luminary := luminaryFor(session, arg(2), logger)
		level := parseInt(arg(3), 0, 255, logger)
		if err := luminary.SetLuminance(uint8(level), cfg.Transition()); err != nil {
			logger.Fatal(err)
		}

	case "temp":
		luminary := luminaryFor(session, arg(2), logger)
		kelvin := parseInt(arg(3), 0, 65535, logger)
		if err := luminary.SetTemperature(uint16(kelvin), cfg.Transition()); err != nil {
			logger.Fatal(err)
		}

	case "rgb":
		luminary := luminaryFor(session, arg(2), logger)
		r := parseInt(arg(3), 0, 255, logger)
		g := parseInt(arg(4), 0, 255, logger)
		b := parseInt(arg(5), 0, 255, logger)
		if err := luminary.SetRGB(uint8(r), uint8(g), uint8(b), cfg.Transition()); err != nil {
			logger.Fatal(err)
		}

	default:
		usage()
		os.Exit(2)
	}
}

// luminaryFor resolves a CLI target: a light name, or "group:<name>".
func luminaryFor(session *gateway.Session, name string, logger *log.Logger) gateway.Luminary {

	if strings.HasPrefix(name, groupPrefix) {
		if err := session.RefreshGroups(); err != nil {
			logger.Fatal(err)
		}
		group, err := session.GroupByName(strings.TrimPrefix(name, groupPrefix))
		if err != nil {
			logger.Fatal(err)
		}
		return session.GroupLuminary(group)
	}

	if err := session.RefreshAllLightStatus(); err != nil {
		logger.Fatal(err)
	}
	light, err := session.LightByName(name)
	if err != nil {
		logger.Fatal(err)
	}
	return session.LightLuminary(light)
}

func printLights(lights []*models.Light) {
	sort.Slice(lights, func(i, j int) bool { return lights[i].Name < lights[j].Name })
	for _, l := range lights {
		fmt.Printf("%-23s %-16s on=%-5v lum=%-3d temp=%dK rgb=#%02x%02x%02x online=%v\n",
			l.MACAddress(), l.Name, l.On, l.Luminance, l.Temperature, l.Red, l.Green, l.Blue, l.Online)
	}
}

func printGroups(session *gateway.Session) {
	groups := lo.Values(session.Groups())
	sort.Slice(groups, func(i, j int) bool { return groups[i].Index < groups[j].Index })
	for _, g := range groups {
		names := lo.Map(session.GroupLights(g), func(l *models.Light, _ int) string { return l.Name })
		fmt.Printf("%3d %-16s %s\n", g.Index, g.Name, strings.Join(names, ", "))
	}
}

func arg(i int) string {
	if len(os.Args) <= i {
		usage()
		os.Exit(2)
	}
	return os.Args[i]
}

func parseInt(s string, min, max int, logger *log.Logger) int {
	v, err := strconv.Atoi(s)
	if err != nil || v < min || v > max {
		logger.Fatalf("expected a number between %d and %d, got %q", min, max, s)
	}
	return v
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: lightify <command> [args]

commands:
  status                          poll and list all lights
  groups                          list groups and their members
  on|off <target>                 switch a light or group
  lum <target> <0-255>            set luminance
  temp <target> <kelvin>          set colour temperature
  rgb <target> <r> <g> <b>        set colour

a <target> is a light name, or "group:<name>"`)
}
