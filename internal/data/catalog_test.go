package data

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCatalogResolvesReferences(t *testing.T) {
	c, err := NewCatalog(
		[]*GovernmentDef{{Name: "Patrol"}},
		[]*ShipModel{{Name: "Lance", MaxHull: 100, Hardpoints: []string{"Gun"}}},
		[]*Weapon{{Name: "Gun"}},
		nil,
		[]*FleetDef{{Name: "Wing", Government: "Patrol", Variants: []FleetVariant{{Ships: []string{"Lance"}}}}},
		[]*PersonDef{{Name: "Ace", Ship: "Lance"}},
		[]*System{
			{Name: "A", LinkNames: []string{"B"}},
			{Name: "B", LinkNames: []string{"A"}},
		},
	)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}

	if ws := c.Ship("Lance").Weapons(); len(ws) != 1 || ws[0] != c.Weapon("Gun") {
		t.Fatalf("hardpoint not resolved to the weapon definition")
	}
	if links := c.System("A").Links(); len(links) != 1 || links[0] != c.System("B") {
		t.Fatalf("system link not resolved")
	}
}

func TestNewCatalogRejectsDanglingNames(t *testing.T) {
	_, err := NewCatalog(nil,
		[]*ShipModel{{Name: "Lance", Hardpoints: []string{"No Such Gun"}}},
		nil, nil, nil, nil, nil)
	if err == nil {
		t.Fatalf("dangling weapon name accepted")
	}

	_, err = NewCatalog(nil, nil, nil, nil, nil, nil,
		[]*System{{Name: "A", LinkNames: []string{"Nowhere"}}})
	if err == nil {
		t.Fatalf("dangling system link accepted")
	}
}

func TestLoadCatalogToleratesMissingFiles(t *testing.T) {
	c, err := LoadCatalog(t.TempDir())
	if err != nil {
		t.Fatalf("LoadCatalog on empty dir: %v", err)
	}
	if g, s, w, f, p, y := c.Counts(); g+s+w+f+p+y != 0 {
		t.Fatalf("empty data dir produced a non-empty catalog")
	}
}

func TestLoadCatalogFromYAML(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) {
		t.Helper()
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	write("weapons.yaml", `
weapons:
  - name: Gun
    reload: 10
    hull_damage: 5
effects:
  - name: flash
    lifetime: 15
`)
	write("ships.yaml", `
ships:
  - name: Lance
    hull: 100
    hardpoints: [Gun]
`)
	write("systems.yaml", `
systems:
  - name: Solo
    asteroids:
      - name: rock
        count: 3
        radius: 10
`)

	c, err := LoadCatalog(dir)
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	if c.Weapon("Gun") == nil || c.Weapon("Gun").HullDamage != 5 {
		t.Fatalf("weapon fields not decoded")
	}
	if c.Effect("flash") == nil || c.Effect("flash").Lifetime != 15 {
		t.Fatalf("effect fields not decoded")
	}
	if len(c.Ship("Lance").Weapons()) != 1 {
		t.Fatalf("loaded ship hardpoints not resolved")
	}
	if len(c.System("Solo").Asteroids) != 1 {
		t.Fatalf("system asteroids not decoded")
	}
}

func TestPersonFrequencyIn(t *testing.T) {
	anywhere := &PersonDef{Name: "A", Frequency: 40}
	local := &PersonDef{Name: "B", Frequency: 40, Systems: []string{"Home"}}

	if anywhere.FrequencyIn("Elsewhere") != 40 {
		t.Fatalf("unrestricted person not eligible everywhere")
	}
	if local.FrequencyIn("Home") != 40 || local.FrequencyIn("Elsewhere") != 0 {
		t.Fatalf("system restriction not applied")
	}
}
