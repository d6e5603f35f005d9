package credits

import "testing"

func TestPackageCatalog(t *testing.T) {
	cases := []struct {
		key       string
		credits   int
		amount    float64
		unlimited bool
	}{
		{"single", 1, 30.0, false},
		{"double", 2, 40.0, false},
		{"unlimited", 0, 50.0, true},
	}
	for _, c := range cases {
		pkg, ok := Packages[c.key]
		if !ok {
			t.Fatalf("missing package %s", c.key)
		}
		if pkg.Credits != c.credits {
			t.Errorf("%s: expected %d credits, got %d", c.key, c.credits, pkg.Credits)
		}
		if pkg.Amount != c.amount {
			t.Errorf("%s: expected amount %.2f, got %.2f", c.key, c.amount, pkg.Amount)
		}
		if pkg.Unlimited != c.unlimited {
			t.Errorf("%s: unexpected unlimited flag %v", c.key, pkg.Unlimited)
		}
	}
	if len(Packages) != 3 {
		t.Fatalf("expected exactly 3 packages, got %d", len(Packages))
	}
}
