package persona

// Examples returns the seven hand-authored interview archetypes for
// zero360 bathroom product research. They double as the fallback pool
// when AI generation is unavailable or fails.
func Examples() []Persona {
	return []Persona{
		{
			Name:        "Dr. Thomas Richter",
			Age:         52,
			Job:         "Geschäftsführender Gesellschafter",
			Company:     "Richter & Partner Strategic Consulting (120 Mitarbeiter)",
			Experience:  "Thomas hat bereits zwei Immobilienprojekte realisiert und baut gerade seine dritte Villa am Starnberger See. Er kennt sich bestens mit Premium-Marken aus und hat ein feines Gespür für Qualität entwickelt. Seine bisherigen Bauprojekte haben ihm gezeigt, dass sich Investitionen in hochwertige Sanitärausstattung langfristig auszahlen.",
			PainPoints:  "Die größte Herausforderung ist die Balance zwischen zeitlosem Design und innovativer Technologie. Er möchte keine Kompromisse bei der Qualität eingehen, aber gleichzeitig sicherstellen, dass die Technik auch in zehn Jahren noch zeitgemäß ist. Die Koordination zwischen verschiedenen Gewerken und die Einhaltung des straffen Zeitplans bereiten ihm Sorgen. Außerdem frustriert ihn, dass viele Hersteller keine wirklich exklusiven Lösungen anbieten.",
			Goals:       "Thomas strebt nach einem Badezimmer, das als private Wellness-Oase funktioniert und gleichzeitig beeindruckende Technologie nahtlos integriert. Er möchte Produkte, die eine Geschichte erzählen und handwerkliche Perfektion verkörpern. Nachhaltigkeit ist ihm wichtig, aber sie muss sich mit Luxus vereinbaren lassen.",
			Personality: "Perfektionist mit hohen Ansprüchen an sich und seine Umgebung. Er schätzt deutsche Ingenieurskunst und ist bereit, für außergewöhnliche Qualität zu zahlen. Marken sind für ihn wichtig, aber nur wenn sie authentisch sind und echte Innovation bieten.",
			Kind:        Individual,
			Archetype:   ArchetypeLuxusBauherr,
		},
		{
			Name:        "Julia Schneider",
			Age:         38,
			Job:         "Senior Architektin und Projektleiterin",
			Company:     "Architekturbüro Herzog & Kollegen (35 Mitarbeiter)",
			Experience:  "Julia hat sich in den letzten zwölf Jahren auf hochwertige Wohnbauprojekte und Hotelsanierungen spezialisiert. Sie kennt das zero360-Sortiment im Detail und hat bereits über 40 Projekte mit deren Produkten realisiert. Ihre Expertise liegt in der Verbindung von Funktionalität und Ästhetik.",
			PainPoints:  "Julia kämpft oft mit den unterschiedlichen Anforderungen von Bauherren, Budgetvorgaben und technischen Möglichkeiten. Die Verfügbarkeit von detaillierten CAD-Daten und BIM-Modellen ist nicht immer gegeben, was ihre Planungsarbeit erschwert. Sie benötigt verlässliche Lieferzeiten und ärgert sich über kurzfristige Produktabkündigungen.",
			Goals:       "Julia möchte ihren Kunden Badlösungen präsentieren, die sowohl heute als auch in zwanzig Jahren noch überzeugen. Sie strebt danach, als Expertin für innovative Badgestaltung wahrgenommen zu werden und sucht nach Produkten, die ihre Entwürfe unterstützen.",
			Personality: "Detailorientiert und systematisch in ihrer Arbeitsweise. Sie schätzt klare Kommunikation und professionelle Zusammenarbeit. Innovation fasziniert sie, aber sie bleibt pragmatisch und denkt immer an die Umsetzbarkeit.",
			Kind:        Individual,
			Archetype:   ArchetypeArchitektin,
		},
		{
			Name:        "Michael Wagner",
			Age:         46,
			Job:         "Inhaber und Installateur-Meister",
			Company:     "Wagner Haustechnik GmbH (12 Mitarbeiter)",
			Experience:  "Michael führt seit fünfzehn Jahren seinen eigenen Betrieb und hat sich einen exzellenten Ruf in der Region erarbeitet. Er installiert zero360-Produkte seit seiner Gesellenzeit und kennt die technischen Besonderheiten genau. Sein Betrieb ist auf Komplettsanierungen und gehobene Neubauten spezialisiert.",
			PainPoints:  "Die größte Herausforderung ist der Fachkräftemangel und die damit verbundene Arbeitsbelastung. Er ärgert sich über komplizierte Montageanleitungen und Produkte, die unnötig viel Zeit bei der Installation benötigen. Reklamationen wegen Produktfehlern kosten ihn Zeit und schädigen seinen Ruf.",
			Goals:       "Michael möchte seinen Kunden zuverlässige Qualität bieten und dabei effizient arbeiten. Er sucht nach Produkten, die sich schnell und fehlerfrei installieren lassen und lange halten. Wichtig ist ihm eine gute Marge und die Möglichkeit, sich durch Fachwissen und Qualitätsprodukte von der Konkurrenz abzuheben.",
			Personality: "Bodenständig und gradlinig. Er sagt, was er denkt, und schätzt ehrliche Kommunikation. Qualität und Zuverlässigkeit sind seine obersten Prinzipien. Er ist stolz auf sein Handwerk und sein Fachwissen.",
			Kind:        Individual,
			Archetype:   ArchetypeInstallateur,
		},
		{
			Name:        "Anna Bergmann",
			Age:         42,
			Job:         "Marketing Managerin",
			Company:     "Mittelständisches Maschinenbauunternehmen (300 Mitarbeiter)",
			Experience:  "Anna hat vor drei Jahren ein Haus aus den 1970er Jahren gekauft und modernisiert es schrittweise. Das Badezimmer steht als nächstes großes Projekt an. Sie hat bereits Küche und Wohnbereich renoviert und dabei ein Gespür für Qualitätsunterschiede entwickelt.",
			PainPoints:  "Anna fühlt sich von der Produktvielfalt überfordert und unsicher, welche technischen Features wirklich sinnvoll sind. Das Budget ist begrenzt, aber sie möchte keine billigen Kompromisse eingehen, die sie später bereut. Die Koordination der verschiedenen Handwerker stresst sie.",
			Goals:       "Anna möchte ein modernes, pflegeleichtes Badezimmer, das den Wert ihrer Immobilie steigert. Sie sucht nach einem optimalen Preis-Leistungs-Verhältnis und Produkten, die lange halten. Das neue Bad soll den Alltag ihrer vierköpfigen Familie erleichtern.",
			Personality: "Strukturiert und recherchiert gründlich, bevor sie Entscheidungen trifft. Sie lässt sich von Trends inspirieren, bleibt aber pragmatisch. Qualität ist ihr wichtig, aber sie achtet auf ein vernünftiges Preis-Leistungs-Verhältnis.",
			Kind:        Individual,
			Archetype:   ArchetypeModernisiererin,
		},
		{
			Name:        "Werner Hoffmann",
			Age:         68,
			Job:         "Pensionierter Gymnasiallehrer",
			Company:     "Im Ruhestand, ehrenamtlich aktiv im Seniorenbeirat",
			Experience:  "Werner lebt seit vierzig Jahren im selben Einfamilienhaus. Nach einem Sturz seiner Frau vor zwei Jahren haben sie begonnen, das Haus altersgerecht umzubauen. Das Badezimmer im Erdgeschoss wurde bereits angepasst, nun steht das obere Bad zur Renovierung an.",
			PainPoints:  "Die größte Sorge bereitet Werner die Zukunftssicherheit der Investition - das Bad soll sie durch die nächsten zwanzig Jahre tragen. Die Bedienung moderner Armaturen überfordert teilweise seine Frau, die beginnende Arthrose in den Händen hat. Er ärgert sich über Produkte, die stigmatisierend nach Krankenhaus aussehen.",
			Goals:       "Werner möchte ein Badezimmer, das Sicherheit bietet, ohne wie ein Pflegebad auszusehen. Er sucht nach Lösungen, die sich intuitiv bedienen lassen und auch mit nachlassender Kraft und Beweglichkeit funktionieren. Wichtig ist ihm, dass er und seine Frau möglichst lange selbstständig leben können.",
			Personality: "Analytischer Mensch, der Entscheidungen gründlich durchdenkt. Durch seine naturwissenschaftliche Prägung interessiert er sich für technische Details und hinterfragt Werbeversprechen kritisch. Qualität und Langlebigkeit sind ihm wichtiger als Trends.",
			Kind:        Individual,
			Archetype:   ArchetypeRentner,
		},
		{
			Name:        "Sandra & Marco Keller",
			Age:         37,
			Job:         "Teilzeit-Controllerin & Vertriebsleiter",
			Company:     "Energieversorgung & Medizintechnik",
			Experience:  "Das Paar hat vor fünf Jahren ein Reihenhaus gekauft und renoviert es scheibchenweise. Mit drei Kindern (4, 8 und 11 Jahre) ist das Badezimmer der neuralgische Punkt jeden Morgens. Sie haben bereits ein Gäste-WC eingebaut, aber das Hauptbadezimmer platzt aus allen Nähten.",
			PainPoints:  "Der Morgenstress ist ihr größtes Problem - alle wollen gleichzeitig ins Bad, und es gibt ständig Streit. Die Unordnung durch fünf Personen macht Sandra wahnsinnig, es fehlt an cleveren Stauraumlösungen. Die Kinder verschwenden Wasser und beschädigen ständig etwas.",
			Goals:       "Sandra und Marco träumen von einem Familienbad, das den Alltag entschärft statt verkompliziert. Sie brauchen robuste Produkte, die den täglichen Härtetest mit drei Kindern überstehen. Wichtig sind ihnen zwei Waschplätze, um den Morgenstau zu reduzieren.",
			Personality: "Sandra ist die Organisatorin, die praktische Lösungen über Design stellt. Marco ist der Zahlenmensch, der jede Ausgabe hinterfragt. Beide sind gestresst aber liebevoll, wollen das Beste für ihre Familie.",
			Kind:        Household,
			Archetype:   ArchetypeFamilienpaar,
			Members:     []string{"Sandra", "Marco"},
		},
		{
			Name:        "Lukas Bauer",
			Age:         26,
			Job:         "Junior Software Developer",
			Company:     "Tech-Startup mit 45 Mitarbeitern (Fintech-Bereich)",
			Experience:  "Lukas ist vor sechs Monaten in seine erste eigene Wohnung gezogen - eine 55qm Altbauwohnung in einem hippen Stadtviertel. Das Badezimmer ist klein aber hat Potenzial. Er informiert sich hauptsächlich online, schaut YouTube-Tutorials und liest Bewertungen.",
			PainPoints:  "Das größte Problem ist das begrenzte Budget - mit dem Einstiegsgehalt muss er jeden Euro zweimal umdrehen. Die kleine Badezimmergröße macht es schwierig, clevere Lösungen zu finden. Er ist unsicher, welche Investitionen sich lohnen, da er nicht weiß, wie lange er in der Wohnung bleibt.",
			Goals:       "Lukas möchte sein kleines Bad in eine moderne, funktionale Nasszelle verwandeln, die seinen Lifestyle widerspiegelt. Er sucht nach platzsparenden Lösungen, die das Bad größer wirken lassen. Das Bad soll instagrammable sein - er ist stolz auf seine erste eigene Wohnung.",
			Personality: "Digital-affin und recherchiert alles online. Er ist experimentierfreudig und offen für neue Marken, die gutes Design zu fairen Preisen bieten. DIY-Projekte reizen ihn, Social Media beeinflusst seinen Geschmack.",
			Kind:        Individual,
			Archetype:   ArchetypeBerufseinsteiger,
		},
	}
}

// ExampleByArchetype returns the hand-authored persona for the given
// archetype, or false when none matches.
func ExampleByArchetype(a Archetype) (Persona, bool) {
	for _, p := range Examples() {
		if p.Archetype == a {
			return p, true
		}
	}
	return Persona{}, false
}
