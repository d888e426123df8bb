package jar

import (
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"

	"swapjar/pkg/types"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]{1,62}[a-z0-9]$`)

// Jar is a published tip-collection link: who gets paid, where, and in
// which stablecoin or native asset.
type Jar struct {
	ID             string            `json:"id"`
	Slug           string            `json:"slug"`
	Name           string            `json:"name"`
	StellarAddress string            `json:"stellarAddress"`
	PreferredAsset types.TargetAsset `json:"preferredAsset"`
	Created        time.Time         `json:"created"`
}

// NewJar builds a jar with a fresh ID and creation time.
func NewJar(slug, name, stellarAddress string, asset types.TargetAsset) *Jar {
	if asset == "" {
		asset = types.AssetUSDC
	}
	return &Jar{
		ID:             uuid.NewString(),
		Slug:           slug,
		Name:           name,
		StellarAddress: stellarAddress,
		PreferredAsset: asset,
		Created:        time.Now().UTC(),
	}
}

// Validate checks if the jar has valid parameters
func (j *Jar) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("jar name is required")
	}
	if j.Slug == "" {
		return fmt.Errorf("jar slug is required")
	}
	if !slugPattern.MatchString(j.Slug) {
		return fmt.Errorf("jar slug must be lowercase letters, digits and hyphens")
	}
	if !types.ValidStellarAddress(j.StellarAddress) {
		return fmt.Errorf("invalid stellar address: %s", j.StellarAddress)
	}
	if j.PreferredAsset != types.AssetXLM && j.PreferredAsset != types.AssetUSDC {
		return fmt.Errorf("preferred asset must be %s or %s", types.AssetXLM, types.AssetUSDC)
	}
	return nil
}
