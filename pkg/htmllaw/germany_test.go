package htmllaw

import (
	"strings"
	"testing"
)

const dePage = `<html><body>
<div class="jnnorm"><h2><span>Erster Abschnitt</span><span>Das Patent</span></h2></div>
<div class="jnnorm">
  <h3><span class="jnenbez">§ 1</span><span class="jnentitel">Patentfähige Erfindungen</span></h3>
  <div class="jurAbsatz">(1) Patente werden für Erfindungen auf allen Gebieten der Technik erteilt, die neu sind.</div>
  <div class="jurAbsatz">(2) Als Erfindungen werden insbesondere nicht angesehen:
    <dl>
      <dt>1.</dt><dd>Entdeckungen sowie wissenschaftliche Theorien;</dd>
      <dt>2.</dt><dd>ästhetische Formschöpfungen;</dd>
    </dl>
  </div>
</div>
<div class="jnnorm">
  <h3><span class="jnenbez">§ 2</span><span class="jnentitel">(weggefallen)</span></h3>
  <div class="jurAbsatz">-</div>
</div>
<div class="jnnorm"><h2><span>Zweiter Abschnitt</span><span>Anmeldung</span></h2></div>
<div class="jnnorm">
  <h3><span class="jnenbez">§ 34</span><span class="jnentitel">Anmeldung</span></h3>
  <div class="jurAbsatz">(1) Die Anmeldung ist beim Patentamt einzureichen.</div>
</div>
</body></html>`

func TestParseGermany(t *testing.T) {
	rows, err := ParseGermany(strings.NewReader(dePage))
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 5 {
		t.Fatalf("got %d rows, want 5: %+v", len(rows), rows)
	}

	r := rows[0]
	if r.Part != "Erster Abschnitt Das Patent" || r.ArticleID != "§ 1" || r.ArticleTitle != "Patentfähige Erfindungen" {
		t.Errorf("rows[0] = %+v", r)
	}
	if r.Paragraph != "1" || !strings.HasPrefix(r.Text, "Patente werden") {
		t.Errorf("rows[0] = %+v", r)
	}

	if rows[1].Paragraph != "2" || rows[1].Text != "Als Erfindungen werden insbesondere nicht angesehen:" {
		t.Errorf("rows[1] = %+v", rows[1])
	}
	if rows[2].Item != "1" || rows[2].Text != "Entdeckungen sowie wissenschaftliche Theorien;" {
		t.Errorf("rows[2] = %+v", rows[2])
	}
	if rows[3].Item != "2" || rows[3].Paragraph != "2" {
		t.Errorf("rows[3] = %+v", rows[3])
	}

	// § 2 is (weggefallen) and skipped; § 34 falls under the second
	// Abschnitt.
	r = rows[4]
	if r.ArticleID != "§ 34" || r.Part != "Zweiter Abschnitt Anmeldung" {
		t.Errorf("rows[4] = %+v", r)
	}
}

func TestParseGermanyNoNorms(t *testing.T) {
	if _, err := ParseGermany(strings.NewReader("<html><body><p>nichts</p></body></html>")); err == nil {
		t.Error("expected error for page without jnnorm blocks")
	}
}
