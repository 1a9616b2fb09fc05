package frames

// Stock art. All sequences are ordered coarse-to-fine so they can be fed
// straight into Index or StepIndex.

// EyesClassic is the default eye ladder for the big cat, one entry per 5%
// of completion.
var EyesClassic = []string{
	"T_T", // 0%
	"T_T",
	";_;", // 10%
	";_;",
	"-_-", // 20%
	"-_-",
	"-_-",
	"-_-",
	"O_O", // 40%
	"O_O",
	"-.-", // 50%
	"^.^",
	"^.^", // 60%
	"^.^",
	"^_^", // 70%
	"^_^",
	"^_^", // 80%
	"^o^",
	"^o^", // 90%
	"^_^", // 95%+
}

// Tails are the two tail positions the big cat alternates between.
var Tails = []string{
	"(`\\",
	" /')",
}

// EmojiCats is the emoji mood ladder.
var EmojiCats = []string{
	"😿", // crying
	"😾", // pouting
	"🙀", // weary
	"😼", // wry smile
	"😽", // kissing
	"😸", // grinning
	"😺", // smiling
	"😹", // tears of joy
	"😻", // heart eyes
	"😻",
	"😻", // 100%
}

// KaomojiFaces is the kaomoji mood ladder, one entry per 5%.
var KaomojiFaces = []string{
	"(=ＴェＴ=)", // very sad
	"(=；ェ；=)", // crying
	"(=；ω；=)",
	"(=ｘェｘ=)", // exhausted
	"(=ノωヽ=)", // tired
	"(=｀ェ´=)", // grumpy
	"(=￣ェ￣=)", // neutral
	"(=¬ェ¬=)", // skeptical
	"(=ФェФ=)", // alert
	"(=ↀωↀ=)", // curious
	"(=￣ω￣=)", // content
	"(=^･ｪ･^=)",
	"(=^･ω･^=)", // happy
	"(=^-ω-^=)",
	"(=^･^=)", // satisfied
	"(=^ェ^=)", // cheerful
	"(=^‥^=)",
	"(=^o^=)", // excited
	"(=^▽^=)", // joyful
	"=^.^=", // blissful
}

// SimpleFaces is a five-step face ladder for narrow displays.
var SimpleFaces = []string{
	"( T_T )",
	"( -_- )",
	"( o_o )",
	"( ^_^ )",
	"( *_* )",
}

// activityCats maps an activity name to a short face cycle.
var activityCats = map[string][]string{
	"loading":     {"(=^.^=)", "(=^o^=)", "(=^_^=)", "(=^-^=)"},
	"processing":  {"(=￣ω￣=)", "(=^･ω･^=)", "(=^‥^=)", "(=^ェ^=)"},
	"thinking":    {"(=｀ェ´=)", "(=¬ェ¬=)", "(=ФェФ=)", "(=ↀωↀ=)"},
	"working":     {"(=^･ｪ･^=)", "(=^･ω･^=)", "(=^-ω-^=)", "(=^･^=)"},
	"celebrating": {"(=^o^=)", "(=^▽^=)", "=^.^=", "(=^ェ^=)"},
}

// ActivityFrames returns the face cycle for an activity, defaulting to
// "loading" for unknown names.
func ActivityFrames(activity string) []string {
	if faces, ok := activityCats[activity]; ok {
		return faces
	}
	return activityCats["loading"]
}

// SleepingCat variants for the welcome animation, snore first.
var SleepingCat = [][]string{
	{
		"      |\\      _,,,---,,_",
		"ZZZzz /,`.-'`'    -.  ;-;;,_",
		"     |,4-  ) )-,_. ,\\ (  `'-'",
		"    '---''(_/--'  `-'\\_)",
	},
	{
		"      |\\      _,,,---,,_",
		"zzzZZ /,`.-'`'    -.  ;-;;,_",
		"     |,4-  ) )-,_. ,\\ (  `'-'",
		"    '---''(_/--'  `-'\\_)",
	},
	{
		"      |\\      _,,,---,,_",
		"ZZZzz /,`.-'`'    -.  ;-;;,_",
		"     |,4-  ) )-,_. ,\\ (  `'-'",
		"    '---''(_/--'  `-'\\_)   💤",
	},
}

// StretchingEyes drive the wake-up frames of the welcome animation.
var StretchingEyes = []string{"o o", "^_^", "^o^"}

// ReadyCat is the final welcome frame.
var ReadyCat = []string{
	"    |\\__/,|   (`\\",
	"  _.|^_^  |_   ) )  ✨",
	"-(((---(((--------",
}

// Phase buckets a session's overall completion into one of five cat
// moods, used by the multi-stage display.
type Phase int

const (
	PhaseSleeping Phase = iota
	PhaseWaking
	PhaseAlert
	PhaseRunning
	PhaseFlying
)

// PhaseFor returns the phase for an overall completion fraction.
func PhaseFor(fraction float64) Phase {
	switch {
	case fraction < 0.2:
		return PhaseSleeping
	case fraction < 0.4:
		return PhaseWaking
	case fraction < 0.6:
		return PhaseAlert
	case fraction < 0.8:
		return PhaseRunning
	default:
		return PhaseFlying
	}
}

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseSleeping:
		return "sleeping"
	case PhaseWaking:
		return "waking"
	case PhaseAlert:
		return "alert"
	case PhaseRunning:
		return "running"
	case PhaseFlying:
		return "flying"
	default:
		return "unknown"
	}
}

// Sprites returns the animation variants for a phase. Every variant has
// four lines so a display can reserve a fixed block.
func (p Phase) Sprites() [][]string {
	switch p {
	case PhaseWaking:
		return wakingSprites
	case PhaseAlert:
		return alertSprites
	case PhaseRunning:
		return runningSprites
	case PhaseFlying:
		return flyingSprites
	default:
		return sleepingSprites
	}
}

var sleepingSprites = [][]string{
	{
		"       /\\_/\\",
		"      ( o.o )",
		"       > ^ <",
		"    zzZ  |_|  Zzz",
	},
	{
		"       /\\_/\\",
		"      ( -.- )",
		"       > ^ <",
		"   zzZ   |_|   Zzz",
	},
	{
		"       /\\_/\\",
		"      ( u.u )",
		"       > ^ <",
		"  zzZ    |_|    Zzz",
	},
}

var wakingSprites = [][]string{
	{
		"       /\\_/\\",
		"      ( O.O )",
		"       > ^ <",
		"        |_|",
	},
	{
		"       /\\_/\\",
		"      ( @.@ )",
		"       > ^ <",
		"        |_|",
	},
	{
		"       /\\_/\\",
		"      ( o.O )",
		"       > ^ <",
		"        |_|",
	},
}

var alertSprites = [][]string{
	{
		"       /\\_/\\",
		"      ( ^.^ )",
		"       > W <",
		"        |_|",
	},
	{
		"       /\\_/\\",
		"      ( ^o^ )",
		"       > W <",
		"        |_|",
	},
	{
		"    /\\ /\\_/\\",
		"   (  ( ^.^ )",
		"    \\ > W <",
		"      \\ |_|",
	},
}

var runningSprites = [][]string{
	{
		"    /\\_   /\\_/\\",
		"   /    ( >o< ) ~",
		"  <      > < <   ~",
		"   \\___   |_|  ~~",
	},
	{
		"     /\\_/\\   _/\\",
		"    ( >o< )   /",
		"    > < <    <",
		"     |_|   ~~~ \\___",
	},
	{
		"  /\\  /\\_/\\",
		" /  ( >o< )  \\",
		"<    > < <    >",
		" \\~~  |_|  ~~/",
	},
}

var flyingSprites = [][]string{
	{
		"   ✨  /\\_/\\  ✨",
		"  ✨  ( ^ω^ )  ✨",
		" ✨    > ◇ <    ✨",
		"   ✨   |_|   ✨",
	},
	{
		"  ⭐  /\\_/\\  ⭐",
		" ⭐   ( ^ω^ )   ⭐",
		"⭐     > ◇ <     ⭐",
		"  ⭐    |_|    ⭐",
	},
	{
		"  🌟  /\\_/\\  🌟",
		" 🌟   ( ^ω^ )   🌟",
		"🌟     > ◇ <     🌟",
		"  🌟    |_|    🌟",
	},
}
