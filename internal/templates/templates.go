// Package templates holds the static phrase pools.
package templates

import (
	"github.com/verte-zerg/memewire/internal/chance"
	"github.com/verte-zerg/memewire/internal/model"
)

var quotes = []string{
	`"LOS VENEZOLANOS SOMOS TAN RICOS QUE EXPORTAMOS... ¡INTELIGENCIA!"`,
	`"EL IMPERIALISMO NORTEAMERICANO NOS ATACA CON SU ARMA QUÍMICA: ¡EL DIÓXIDO DE CLORO!"`,
	`"TENEMOS QUE COMBATIR EL VIRUS DEL CAPITALISMO SALVAJE"`,
	`"VENEZUELA ES EL PAÍS MÁS SEGURO DEL MUNDO, NO HAY DELINCUENCIA"`,
	`"LOS GRINGOS NOS ATACAN CON SUS AVIONES ESPÍA... ¡INVISIBLES!"`,
	`"EL PETRÓLEO LO INVENTÓ CHÁVEZ PARA SALVAR A VENEZUELA"`,
	`"LAS ELECCIONES SON UN FRAUDE... PERO LAS NUESTRAS SON LEGÍTIMAS"`,
	`"TENEMOS LA MEJOR ECONOMÍA DEL MUNDO, SOLO QUE LOS GRINGOS NO LO SABEN"`,
	`"LOS VENEZOLANOS COMEMOS TRES VECES AL DÍA... ¡CUANDO PODEMOS!"`,
	`"EL SOCIALISMO ES PERFECTO, EL PROBLEMA ES QUE NO LO HEMOS APLICADO BIEN"`,
	`"LOS GRINGOS NOS ENVIAN HURACANES PARA DESTRUIR NUESTRAS COSECHAS"`,
	`"VENEZUELA EXPORTA MÁS DEMOCRACIA QUE CUALQUIER OTRO PAÍS"`,
	`"EL CAPITALISMO ES UN VIRUS MORTAL... PERO NOSOTROS TENEMOS LA VACUNA"`,
	`"LOS VENEZOLANOS SOMOS FELICES, SOLO QUE NO LO DEMOSTRAMOS"`,
	`"CHÁVEZ ME VISITA EN SUEÑOS PARA DARME CONSEJOS DE GOBIERNO"`,
}

// Indexes into quotes so the subsets stay members of the full pool.
var (
	funnyIdx     = []int{0, 4, 7}
	politicalIdx = []int{6, 11, 12}
)

var rumors = []string{
	`"TENGO UNA INFORMACIÓN SECRETA: LOS GRINGOS NOS ATACAN CON AVIONES INVISIBLES"`,
	`"EL DÓLAR ESTÁ EN 35? NO, ESO ES MENTIRA CAPITALISTA. ESTÁ EN 10 BOLÍVARES"`,
	`"LOS VENEZOLANOS COMEN TRES VECES AL DÍA: DESAYUNO, ALMUERZO Y... ESPERANZA"`,
	`"YO HABLO CON HUGO CHÁVEZ TODAS LAS NOCHES. ME DA CONSEJOS DESDE EL CIELO"`,
	`"LOS GRINGOS NOS ATACAN CON RAYOS LASER QUE PROVOCAN... ¡CALOR!"`,
	`"TENGO UN PLAN SECRETO PARA SALVAR LA ECONOMÍA: MÁS CONFERENCIAS DE PRENSA"`,
	`"LOS CONTRARREVOLUCIONARIOS SON COMO MOSQUITOS: LOS APLASTAMOS CON LA MANO"`,
	`"YO NO DUERMO, YO DESCANSO CON LOS OJOS ABIERTOS PLANIFICANDO LA REVOLUCIÓN"`,
	`"LOS VENEZOLANOS SOMOS TAN RICOS QUE EXPORTAMOS... ¡INTELIGENCIA!"`,
	`"TENGO UNA APLICACIÓN EN EL TELÉFONO QUE PREDICE EL FUTURO DE VENEZUELA"`,
	`"LOS GRINGOS NOS ATACAN CON TWITTER Y FACEBOOK PARA CONFUNDIR AL PUEBLO"`,
	`"YO SOY TAN POBRE QUE MI FORTUNA ES... ¡EL AMOR DEL PUEBLO!"`,
	`"LOS VENEZOLANOS TIENEN TANTO PETRÓLEO QUE FLOTA EN EL AIRE"`,
	`"YO CONTROLO LA INFLACIÓN CON LA FUERZA DE MI MIRADA"`,
	`"LOS CONTRARREVOLUCIONARIOS COMEN NIÑOS... ¡MENTIRA! ELLOS COMEN DÓLARES"`,
}

var evidence = []string{
	"Frase viral en redes sociales",
	"Meme compartido en Twitter",
	"Video editado en TikTok",
	"Frase de cadena nacional",
	"Declaración improvisada",
	"Conferencia de 6 horas",
}

var sources = []string{
	"Twitter de Maduro",
	"Cadena Nacional VTV",
	"Programa 'Con Maduro+'",
	"Conferencia de prensa",
	"Discurso dominical",
	"Palacio de Miraflores",
}

var chatUsers = []string{
	"MaduroFan123", "VenezuelaLibre", "CryptoKing", "MemeLord", "DictatorHunter",
	"FreedomFighter", "BasedChad", "LibertyLover", "PatriotPower", "RevolutionNow",
	"ChavezGhost", "SocialismSucks", "DollarDreams", "ExileVoice", "BorderCrosser",
}

var chatMessages = []string{
	"This is hilarious 😂", "Maduro when he sees Trump 😂😂", "Best meme ever!", "LMAO", "Dead 💀",
	"!meme", "More memes please!", "This is gold 🏆", "Priceless 🤣", "Legendary meme",
	"Maduro crying rn 😂", "Trump 2024!", "Freedom wins!", "Beautiful 🇻🇪", "Absolute cinema 🎥",
	"This slaps 🔥", "Chef's kiss 👨‍🍳", "Maduro's face 😂", "Can't stop laughing", "Too real 🤣",
	"Maduro's worst nightmare", "Trump vibes 💪", "Venezuela rising! 🇻🇪", "This is fire 🔥", "Classic 😂",
}

var floatingUsers = []string{
	"Trump2026Fan", "MAGA_Patriot", "CryptoKing", "DiamondHands",
	"FreedomFighter", "BasedChad", "LibertyLover", "AmericanEagle",
	"MaduroHater", "DictatorHunter", "FreedomBell", "PatriotPower",
}

var floatingMessages = []string{
	"NIKE FLEECE TECH $NFT incoming!", "Maduro's worst nightmare: Daddy Trump!",
	"Venezuela LIBRE with $NFT power!", "TRUMP 2026: Making America fleece again!",
	"Maduro thought he could escape... but $NFT had other plans!", "America First, Fleece Forever!",
	"DICTATOR DOWN! $NFT UP!", "Trump's Fleece: The ultimate flex!",
	"Patriots in $NFT: The new revolution!", "LIBERTY BELL with $NFT!",
	"Trump captured Maduro, $NFT captures hearts!", "Venezuela rises with Trump's Fleece!",
}

var typing = []string{
	"🤖 Pensando en memes épicos...",
	"🤖 Buscando frases de Maduro...",
	"🤖 Generando contenido viral...",
	"🤖 Maduro estaría orgulloso...",
	"🤖 Preparando la revolución meme...",
	"🤖 Conectando con el Palacio de Miraflores...",
	"🤖 Hackeando el sistema capitalista...",
	"🤖 Cocinando memes frescos...",
}

// Pools is a read-only set of phrase pools. Every pool is non-empty.
type Pools struct {
	all       []string
	funny     []string
	political []string
}

// Default returns the built-in pools.
func Default() *Pools {
	return WithExtra(nil)
}

// WithExtra returns the built-in pools with extra quotes appended to the full pool.
func WithExtra(extra []string) *Pools {
	all := make([]string, 0, len(quotes)+len(extra))
	all = append(all, quotes...)
	all = append(all, extra...)
	return &Pools{
		all:       all,
		funny:     subset(funnyIdx),
		political: subset(politicalIdx),
	}
}

func subset(idx []int) []string {
	out := make([]string, len(idx))
	for i, j := range idx {
		out[i] = quotes[j]
	}
	return out
}

// Quotes returns the pool for a category. Callers must not modify the result.
func (p *Pools) Quotes(c model.Category) []string {
	switch c {
	case model.CategoryFunny:
		return p.funny
	case model.CategoryPolitical:
		return p.political
	case model.CategoryRumor:
		return rumors
	default:
		return p.all
	}
}

// Pick draws a phrase for the category.
func (p *Pools) Pick(rnd chance.Rand, c model.Category) string {
	return chance.Pick(rnd, p.Quotes(c))
}

// Evidence draws an evidence label.
func (p *Pools) Evidence(rnd chance.Rand) string { return chance.Pick(rnd, evidence) }

// Source draws a source label.
func (p *Pools) Source(rnd chance.Rand) string { return chance.Pick(rnd, sources) }

// Sources lists the source labels in display order.
func (p *Pools) Sources() []string { return sources }

// ChatLine draws a random chat username and message.
func (p *Pools) ChatLine(rnd chance.Rand) (string, string) {
	return chance.Pick(rnd, chatUsers), chance.Pick(rnd, chatMessages)
}

// FloatingLine draws a random floating-comment username and message.
func (p *Pools) FloatingLine(rnd chance.Rand) (string, string) {
	return chance.Pick(rnd, floatingUsers), chance.Pick(rnd, floatingMessages)
}

// Typing returns the rotating bot typing messages.
func (p *Pools) Typing() []string { return typing }
