// Package catalogs loads the JSON data catalogs: hero name pools and
// contract title pools. Pool order is part of the determinism contract (the
// engine indexes pools with RNG draws), so files are kept in draw order and
// digested so a replay can verify it ran against the same data.
package catalogs

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type Catalogs struct {
	HeroNames      []string
	ContractTitles []string

	HeroNamesDigest      string
	ContractTitlesDigest string
}

func Load(configDir string) (*Catalogs, error) {
	c := &Catalogs{}
	if err := loadPool(filepath.Join(configDir, "hero_names.json"), &c.HeroNames, &c.HeroNamesDigest); err != nil {
		return nil, err
	}
	if err := loadPool(filepath.Join(configDir, "contract_titles.json"), &c.ContractTitles, &c.ContractTitlesDigest); err != nil {
		return nil, err
	}
	return c, nil
}

// Builtin returns the embedded fallback pools, used when no config directory
// is given and by tests.
func Builtin() *Catalogs {
	c := &Catalogs{
		HeroNames: []string{
			"Aldric", "Brana", "Cedwyn", "Darya", "Edmun", "Fenna",
			"Gorim", "Hesta", "Ionwe", "Jorah", "Kessa", "Lothar",
			"Mirel", "Nadja", "Osric", "Petra", "Quill", "Rosalind",
			"Sorin", "Tamsin", "Ulfric", "Vesna", "Wendel", "Yareth",
		},
		ContractTitles: []string{
			"Goblin Raid", "Missing Caravan", "Wolf Cull", "Haunted Mill",
			"Bandit Toll", "Sewer Crawl", "Lost Heirloom", "Harpy Nest",
			"Smuggler Watch", "Bog Witch", "Mine Collapse", "Escort Duty",
			"Rat Plague", "Broken Bridge", "Cursed Well", "Night Courier",
		},
	}
	c.HeroNamesDigest = poolDigest(c.HeroNames)
	c.ContractTitlesDigest = poolDigest(c.ContractTitles)
	return c
}

func loadPool(path string, out *[]string, digest *string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	*digest = sha256Hex(raw)

	var pool []string
	if err := json.Unmarshal(raw, &pool); err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	if len(pool) == 0 {
		return fmt.Errorf("%s: empty pool", filepath.Base(path))
	}
	for _, s := range pool {
		if s == "" {
			return fmt.Errorf("%s: empty entry", filepath.Base(path))
		}
	}
	*out = pool
	return nil
}

func poolDigest(pool []string) string {
	b, _ := json.Marshal(pool)
	return sha256Hex(b)
}

func sha256Hex(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
