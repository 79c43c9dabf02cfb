package main

import (
	"encoding/json"
	"log"
	"net/url"
	"time"

	"gorm.io/datatypes"

	"petsynth/internal/config"
	"petsynth/internal/database"
	"petsynth/internal/models"
)

type seedPet struct {
	id               string
	name             string
	imageText        string
	species          string
	traits           []string
	description      string
	careInstructions string
	priceCents       int
}

// Catalog starters. Inserts are keyed by stable ids so the seeder can run
// repeatedly without duplicating rows.
var seedPets = []seedPet{
	{
		id:        "pet-1",
		name:      "Nimbus the Orbital Puff",
		imageText: "Nimbus",
		species:   "Zero-G Cloud Ferret",
		traits:    []string{"buoyant", "electrostatic", "purring"},
		description: "Nimbus is a semi-coherent puff of ionized fluff that orbits your head at a polite distance, " +
			"chirping in Morse when it wants snacks. Its fur is more of a weather pattern than a texture, " +
			"occasionally forming mini cumulonimbus for dramatic effect.",
		careInstructions: "- Ground yourself before petting to avoid micro-lightning cuddles\n" +
			"- Feed with dehydrated rainbows (rehydrate on Tuesdays)\n" +
			"- Do not store near ceiling fans\n" +
			"- If Nimbus splits into two, name the clone immediately to avoid identity drift\n" +
			"- Perform lullaby in Lydian mode nightly\n" +
			"- Schedule solar basking on windowsills during golden hour\n" +
			"- Never mix with helium balloons\n" +
			"- Groom with antistatic gloves only",
		priceCents: 48900,
	},
	{
		id:        "pet-2",
		name:      "Whisper",
		imageText: "Whisper",
		species:   "Theremin Cat",
		traits:    []string{"melodic", "ethereal", "sensitive", "electromagnetic"},
		description: "Whisper produces haunting melodies by proximity alone. Wave your hand near its crystalline " +
			"whiskers and it hums Debussy. Prefers minor keys and appreciates good reverb. Will judge your " +
			"taste in music silently but intensely.",
		careInstructions: "- Install soundproofing if you have neighbors\n" +
			"- Provide vintage audio equipment for enrichment\n" +
			"- Feed exclusively on moth-wing frequencies\n" +
			"- Tune whiskers weekly with a pitch fork (A440)\n" +
			"- Never expose to dubstep or heavy metal\n" +
			"- Maintain humidity between 40-60% for optimal resonance\n" +
			"- Schedule nightly concerts at 11:00 PM sharp\n" +
			"- Polish antennas with conductive gel monthly",
		priceCents: 67500,
	},
	{
		id:        "pet-3",
		name:      "Tick-Tock",
		imageText: "Tick-Tock",
		species:   "Clockwork Axolotl",
		traits:    []string{"precise", "aquatic", "mechanical", "punctual"},
		description: "Tick-Tock is a brass and copper amphibian that runs on pure determination and occasional " +
			"drops of clock oil. Each gill is a tiny propeller that spins in perfect synchronization. Tells " +
			"time to the microsecond and judges you for being late.",
		careInstructions: "- Wind daily at exactly 8:00 AM (do not be late)\n" +
			"- Clean gears with mineral oil every Sunday\n" +
			"- Submerge in distilled water with precise pH 7.4\n" +
			"- Replace mainspring annually on the vernal equinox\n" +
			"- Provide metronome for companionship\n" +
			"- Polish brass components with jeweler's cloth\n" +
			"- Never wind backwards or time itself may unravel\n" +
			"- Lubricate joints during time zone changes",
		priceCents: 89000,
	},
	{
		id:        "pet-4",
		name:      "Jitter",
		imageText: "Jitter",
		species:   "Caffeine Mole-Rat",
		traits:    []string{"hyperactive", "nocturnal", "burrowing", "wired"},
		description: "Jitter subsists entirely on coffee grounds and existential dread. Moves at 4x speed and " +
			"communicates in rapid-fire squeaks. Excellent at digging through your inbox, literal dirt, and " +
			"philosophical questions about the nature of time.",
		careInstructions: "- Provide fresh espresso grounds twice daily\n" +
			"- Install tunnel system with at least 40 feet of PVC\n" +
			"- Never offer decaf (this is cruelty)\n" +
			"- Expect no sleep between 11 PM and 5 AM\n" +
			"- Supply tiny sunglasses for light sensitivity\n" +
			"- Rotate coffee bean varieties to prevent flavor boredom\n" +
			"- Provide stress ball for excess energy\n" +
			"- Schedule philosophical discussions during 3 AM zoomies",
		priceCents: 34900,
	},
	{
		id:        "pet-5",
		name:      "Ember",
		imageText: "Ember",
		species:   "Velvet Basilisk",
		traits:    []string{"regal", "petrifying", "luxurious", "dramatic"},
		description: "Ember can turn people to stone, but chooses not to because it prefers the aesthetic of " +
			"living admirers. Its scales feel like crushed velvet and shimmer like oil on water. Extremely " +
			"vain and requires compliments hourly.",
		careInstructions: "- Wear mirrored sunglasses during eye contact\n" +
			"- Compliment appearance at least 12 times per day\n" +
			"- Feed on quartz crystals and gemstones\n" +
			"- Provide heated basking rock at exactly 95°F\n" +
			"- Install full-length mirror for self-admiration\n" +
			"- Brush scales with silk cloth twice weekly\n" +
			"- Never criticize fashion choices\n" +
			"- Maintain Instagram account for glamour shots",
		priceCents: 125000,
	},
	{
		id:        "pet-6",
		name:      "Fractal",
		imageText: "Fractal",
		species:   "Recursive Gecko",
		traits:    []string{"mathematical", "self-similar", "infinite", "contemplative"},
		description: "Fractal contains infinite smaller copies of itself, each containing infinite smaller " +
			"copies, ad infinitum. Excellent at explaining the Mandelbrot set but terrible at fitting " +
			"through doorways. Exists in at least 7 dimensions.",
		careInstructions: "- Feed with non-Euclidean fruit arrangements\n" +
			"- Provide infinite terrarium (4x4 feet will do)\n" +
			"- Never count its scales (you will lose sanity)\n" +
			"- Discuss topology during morning basking\n" +
			"- Rotate habitat 90° in the 4th dimension weekly\n" +
			"- Avoid Boolean logic in its presence\n" +
			"- Provide Klein bottle for water\n" +
			"- Meditate with it during full moons",
		priceCents: 99900,
	},
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	now := time.Now().UnixMilli()
	seeded := 0
	for _, p := range seedPets {
		traits, err := json.Marshal(p.traits)
		if err != nil {
			log.Fatalf("Failed to encode traits for %s: %v", p.id, err)
		}

		pet := models.Pet{
			ID:               p.id,
			Name:             p.name,
			Species:          p.species,
			Traits:           datatypes.JSON(traits),
			Description:      p.description,
			CareInstructions: p.careInstructions,
			PriceCents:       p.priceCents,
			ImageURL:         "https://placehold.co/1024x1024?text=" + url.QueryEscape(p.imageText),
			Status:           models.PetStatusSeed,
			CreatedAt:        now,
		}

		result := db.Where(models.Pet{ID: p.id}).FirstOrCreate(&pet)
		if result.Error != nil {
			log.Fatalf("Failed to seed pet %s: %v", p.id, result.Error)
		}
		if result.RowsAffected > 0 {
			seeded++
		}
	}

	log.Printf("Seed complete: %d inserted, %d already present", seeded, len(seedPets)-seeded)
}
