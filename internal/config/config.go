package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ScheduleStep is the light state a schedule drives towards.
type ScheduleStep struct {
	Temperature int `json:"temperature"`
	Luminance   int `json:"luminance"`
}

// ScheduleConfig enables the daemon's sunrise/sunset schedule.
type ScheduleConfig struct {
	Enabled bool `json:"enabled"`

	// clamps applied to the computed sunrise/sunset, e.g. "06:30"
	SunriseMin string `json:"sunriseMin"`
	SunriseMax string `json:"sunriseMax"`
	SunsetMin  string `json:"sunsetMin"`
	SunsetMax  string `json:"sunsetMax"`

	Day   ScheduleStep `json:"day"`
	Night ScheduleStep `json:"night"`
}

type Config struct {
	GatewayIP           string         `json:"gatewayIp"`
	GatewayPort         int            `json:"gatewayPort"`
	TimeoutSeconds      int            `json:"timeoutSeconds"`
	TransitionMs        int            `json:"transitionMs"`
	PollIntervalSeconds int            `json:"pollIntervalSeconds"`
	GeoLocation         string         `json:"geoLocation"`
	Schedule            ScheduleConfig `json:"schedule"`
}

// ReadConfig finds and reads the config file (json, named "config") from
// /etc/lightify, ~/.config/lightify, or the working directory.
func ReadConfig() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("json")
	viper.AddConfigPath("/etc/lightify/")
	viper.AddConfigPath("$HOME/.config/lightify/")
	viper.AddConfigPath(".")

	viper.SetDefault("gatewayPort", 4000)
	viper.SetDefault("timeoutSeconds", 0)
	viper.SetDefault("transitionMs", 0)
	viper.SetDefault("pollIntervalSeconds", 60)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("fatal error config file: %w", err)
	}

	config := Config{}
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}
	return &config, nil
}

// Timeout is the optional socket deadline; zero means block indefinitely.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

func (c Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalSeconds) * time.Second
}

// Transition is the fade time sent with every state-changing command.
func (c Config) Transition() uint16 {
	return uint16(c.TransitionMs)
}
