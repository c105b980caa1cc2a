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

// DefaultAPIURL is used when neither the environment nor a config file
// provides an endpoint.
const DefaultAPIURL = "http://localhost:8000"

type Application struct {
	API    API    `koanf:"api"`
	Locale string `koanf:"locale"`
}

type API struct {
	URL string `koanf:"url"`
}

// BaseURL returns the configured API endpoint without trailing slashes.
func (a Application) BaseURL() string {
	return strings.TrimRight(a.API.URL, "/")
}

// Load resolves the application configuration in priority order:
// environment variables (FINSIGHT_ prefix) over the YAML file at path
// over built-in defaults. A missing config file is not an error.
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		API: API{
			URL: DefaultAPIURL,
		},
		Locale: "en-US",
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Debugf("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "FINSIGHT_",
		TransformFunc: func(k, v string) (string, any) {
			// FINSIGHT_API_URL -> api.url
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "FINSIGHT_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
