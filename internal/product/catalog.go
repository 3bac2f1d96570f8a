package product

import "strings"

// Catalog returns the built-in zero360 concept catalog used for quick
// selection. Descriptions and value propositions are kept in German,
// matching the interview language.
func Catalog() []Product {
	return []Product{
		{
			Name:         "zero360 FlexSpace System",
			Description:  "Modulares Duschsystem mit magnetischer Wandschiene, das sich an verändernde Lebenssituationen anpasst. Komponenten können werkzeuglos angebracht werden - von Handbrausen auf Kinderhöhe bis zu Duschsitzen mit Haltegriffen. Jedes Modul kommuniziert über NFC und passt automatisch Wasserdruck und Temperatur an.",
			ValueProp:    "Maximale Flexibilität durch modularen Aufbau. Passt sich an alle Lebensphasen an - von der ersten Wohnung bis zum altersgerechten Bad. Module sind mietbar für maximale Kostenflexibilität.",
			TargetMarket: "Mieter, junge Familien, Menschen in Veränderungsphasen",
			KeyFeatures:  []string{"Magnetische Wandschiene", "Werkzeuglose Montage", "Modulare Komponenten", "Höhenverstellbar"},
			Category:     "Shower System",
		},
		{
			Name:         "zero360 AIR (Adaptive Intelligent Room)",
			Description:  "Intelligentes Badezimmersystem mit dezenten Sensoren in den Armaturen. Erfasst Nutzungsmuster, analysiert Wasserqualität in Echtzeit und optimiert selbstständig. Lernt Familienroutinen und bereitet das Bad optimal vor. Generiert automatisch Wartungsprotokolle.",
			ValueProp:    "KI-gesteuerte Optimierung des gesamten Badezimmers. Automatische Anpassung an Nutzergewohnheiten, präventive Wartung und professionelle Datenanalyse für Hotels und Gewerbe.",
			TargetMarket: "Luxussegment, Hotels, technikaffine Haushalte",
			KeyFeatures:  []string{"KI-gesteuerte Optimierung", "Echtzeitanalyse", "Präventive Wartung", "Personalisierte Einstellungen"},
			Category:     "Smart Home",
		},
		{
			Name:         "zero360 Connect Hub",
			Description:  "Zentrale Schaltzentrale, die alle Wasseranwendungen im Haus intelligent vernetzt. Kommuniziert mit Waschmaschine, Geschirrspüler und Sanitärarmaturen. Vermeidet Lastspitzen und optimiert Wasserverbrauch. Perfekte Nachrüstlösung für bestehende Häuser.",
			ValueProp:    "Ein Gerät revolutioniert das gesamte Wassermanagement. Intelligente Vernetzung aller Geräte, Lastspitzenmanagement und deutliche Kosteneinsparungen.",
			TargetMarket: "Hausmodernisierer, Smart Home Enthusiasten",
			KeyFeatures:  []string{"Zentrale Steuerung", "Leckage-Erkennung", "Verbrauchsoptimierung", "Smart Home Integration"},
			Category:     "Water Management",
		},
		{
			Name:         "zero360 PureFlow Kreislaufsystem",
			Description:  "Revolutionäres Dreifach-System für nachhaltiges Wassermanagement: Grauwasser-Recycling für Toilettenspülung, Wärmerückgewinnung aus Duschwasser und intelligenter Durchflussbegrenzer. Spart bis zu 40% Wasser- und Energiekosten.",
			ValueProp:    "Nachhaltigkeit ohne Verzicht - sogar mit verbessertem Komfort. Massive Kosteneinsparungen bei gleichzeitig reduziertem CO2-Fußabdruck. Spielerische Umwelterziehung für Kinder.",
			TargetMarket: "Umweltbewusste Familien, Kostenbewusste Haushalte",
			KeyFeatures:  []string{"Wasser-Recycling", "Dreifach-Filtersystem", "CO2-Reduktion", "Kosteneinsparung"},
			Category:     "Water Management",
		},
		{
			Name:         "zero360 Infinity Line",
			Description:  "Kreislaufwirtschaft in Perfektion: Alle Komponenten vollständig recycelbar, modularer Aufbau für einfache Reparaturen. zero360 garantiert Rücknahme mit Bonus-System. Verschleißteile einzeln tauschbar ohne Komplettaustausch der Armatur.",
			ValueProp:    "Echte Nachhaltigkeit mit Zertifikat und finanziellen Vorteilen. Modulares Design reduziert Wartungskosten drastisch. Rücknahme-Garantie mit Bonus schafft Planungssicherheit.",
			TargetMarket: "Nachhaltigkeitsbewusste Bauherren, Architekten",
			Category:     "Faucet/Tap",
		},
		{
			Name:         "zero360 EcoSense Technology",
			Description:  "Ganzheitliches System macht Wasserverbrauch erlebbar ohne zu bevormunden. Mikroturbinen-Generatoren erzeugen Strom für LED-Anzeigen. Gaming-Elemente und Peer-Vergleiche über App. Automatische Monatsreports zur Amortisationsberechnung.",
			ValueProp:    "Wassersparen wird zum positiven Erlebnis statt Verzicht. Gamification motiviert nachhaltig. Transparente Kostenanalyse zeigt sofort den finanziellen Nutzen.",
			TargetMarket: "Digital Natives, kostenbewusste Familien",
			Category:     "Smart Home",
		},
		{
			Name:         "zero360 VitalShower System",
			Description:  "Medizinische Wellness-Dusche kombiniert Licht-, Aroma- und Klangtherapie. Tageszeitabhängige Farbspektren, austauschbare Duftmodule, integrierte Resonanzkörper. Verschiedene Vital-Programme von Energiekick bis Entspannung. Dokumentiert Vitaldaten.",
			ValueProp:    "Private Spa-Behandlung jeden Tag zuhause. Therapeutische Programme für Gesundheit und Wohlbefinden. Personalisierte Wellness-Empfehlungen basierend auf Vitaldaten.",
			TargetMarket: "Wellness-orientierte Kunden, Gesundheitsbewusste",
			Category:     "Shower System",
		},
		{
			Name:         "zero360 PureGuard Hygienesystem",
			Description:  "Revolutionäre Badezimmerhygiene durch antimikrobielle Kupfer-Silber-Oberflächen, automatische UV-C-Sterilisation und intelligente Luftführung. KidsProtect-Modus für Familien. Selbstreinigende Funktion eliminiert 99,9% der Bakterien.",
			ValueProp:    "Maximale Hygiene bei minimaler Arbeit. Automatische Keimbekämpfung und kindersichere Bedienung. Weniger putzen bei besserer Sauberkeit.",
			TargetMarket: "Familien mit Kindern, Hygiene-bewusste Haushalte",
			Category:     "Accessories",
		},
		{
			Name:         "zero360 WaterLab Analytics",
			Description:  "Kompaktes Analysesystem überwacht kontinuierlich Wasserqualität: pH-Wert, Härtegrad, Schwermetalle, Mikroplastik, Bakterien. Aktiviert bei Bedarf verschiedene Filterstufen oder reichert Wasser mit Mineralien an. Warnt vor Medikamenten-Interaktionen.",
			ValueProp:    "Gewissheit über Wasserqualität und automatische Optimierung. Gesundheitsschutz durch Medikamenten-Warnungen. Dokumentation für Vermieter-Gespräche.",
			TargetMarket: "Gesundheitsbewusste, Bewohner älterer Gebäude",
			Category:     "Water Management",
		},
	}
}

// Find looks a catalog product up by name. Exact (case-insensitive)
// matches win; otherwise a unique substring like "flexspace" or
// "connect hub" is accepted, which keeps CLI flags short.
func Find(query string) (Product, bool) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return Product{}, false
	}

	catalog := Catalog()
	for _, p := range catalog {
		if strings.EqualFold(p.Name, query) {
			return p, true
		}
	}

	var match Product
	var hits int
	for _, p := range catalog {
		if strings.Contains(strings.ToLower(p.Name), q) {
			match = p
			hits++
		}
	}
	if hits == 1 {
		return match, true
	}
	return Product{}, false
}
