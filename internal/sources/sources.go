// Package sources holds the live upstream adapters: public hazard feeds and
// the app's own backend.
package sources

import (
	"github.com/i474232898/incident-map/internal/incident"
)

// Endpoints names the upstream URLs. Empty URLs make the matching source
// fail, which the aggregator turns into fixture data.
type Endpoints struct {
	CalFire    string
	USGS       string
	NOAAFloods string
	Backend    string
}

// Live builds one incident source per category plus the backend client.
func Live(cfg HTTPClientConfig, ep Endpoints) ([]incident.Source, *Backend) {
	backend := NewBackend(cfg, ep.Backend)
	return []incident.Source{
		NewCalFireSource(cfg, ep.CalFire),
		backend.Evacuations(),
		backend.ReliefCenters(),
		NewNOAAFloodSource(cfg, ep.NOAAFloods),
		NewUSGSSource(cfg, ep.USGS),
	}, backend
}
