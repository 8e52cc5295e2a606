package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "TIMEBUDGET_"

type Application struct {
	Listen   string   `koanf:"listen"`
	Database Database `koanf:"db"`
}

type Database struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Pass     string `koanf:"pass"`
	Name     string `koanf:"name"`
	Schema   string `koanf:"schema"`
	MaxConns int32  `koanf:"maxconns"`
}

// Client is the configuration of the terminal client.
type Client struct {
	Api   Api  `koanf:"api"`
	Debug bool `koanf:"debug"`
}

type Api struct {
	Url string `koanf:"url"`
}

func Load(path string) (Application, error) {
	defaults := Application{
		Listen: ":5000",
		Database: Database{
			Host:     "localhost",
			Port:     5432,
			User:     "timebudget",
			Pass:     "",
			Name:     "timebudget",
			Schema:   "timebudget",
			MaxConns: 25,
		},
	}
	var app Application
	if err := load(path, defaults, &app); err != nil {
		return Application{}, err
	}
	return app, nil
}

func LoadClient(path string) (Client, error) {
	defaults := Client{
		Api: Api{Url: "http://localhost:5000"},
	}
	var client Client
	if err := load(path, defaults, &client); err != nil {
		return Client{}, err
	}
	return client, nil
}

// load layers struct defaults, an optional YAML file and TIMEBUDGET_* environment variables into out.
func load(path string, defaults any, out any) error {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(defaults, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return err
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			if os.IsNotExist(err) {
				log.Infof("Config file not found at %s, using defaults and environment variables", path)
			} else {
				log.Errorf("error loading config from YAML: %v", err)
				return err
			}
		} else {
			log.Infof("Loaded configuration from file: %s", path)
		}
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return err
	}

	return k.Unmarshal("", out)
}
