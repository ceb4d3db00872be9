package config

import (
	"strings"

	"github.com/proconsult/onboard/internal/log"
)

// ServiceURLs is the pair of base URLs every API call is made against.
type ServiceURLs struct {
	Identity string // identity/registration service
	IFRS16   string // lease (IFRS 16) service
}

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// ResolveServices picks the service pair for host. The first deployment
// with a host contained in host wins; an unmatched host falls back to the
// primary production pair (api.* settings, then the primary environment
// variables, then the localhost defaults).
func (c Config) ResolveServices(host string, getenv Getenv) ServiceURLs {
	fallback := ServiceURLs{
		Identity: firstNonEmpty(c.API.IdentityService, getenv(EnvIdentityService), DefaultIdentityService),
		IFRS16:   firstNonEmpty(c.API.IFRS16Service, getenv(EnvIFRS16Service), DefaultIFRS16Service),
	}

	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return fallback
	}

	for _, d := range c.Deployments {
		if !d.matches(host) {
			continue
		}
		urls := ServiceURLs{
			Identity: firstNonEmpty(d.IdentityService, envOf(getenv, d.IdentityEnv), fallback.Identity),
			IFRS16:   firstNonEmpty(d.IFRS16Service, envOf(getenv, d.IFRS16Env), fallback.IFRS16),
		}
		log.Debug(log.CatConfig, "Deployment matched", "host", host, "deployment", d.Name)
		return urls
	}

	log.Debug(log.CatConfig, "No deployment matched, using default services", "host", host)
	return fallback
}

func (d DeploymentConfig) matches(host string) bool {
	for _, h := range d.Hosts {
		if h != "" && strings.Contains(host, strings.ToLower(h)) {
			return true
		}
	}
	return false
}

func envOf(getenv Getenv, key string) string {
	if key == "" {
		return ""
	}
	return getenv(key)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return strings.TrimRight(v, "/")
		}
	}
	return ""
}
