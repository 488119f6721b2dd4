package checklist

// Item is a single checklist entry.
type Item struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// DisplayEntry pairs an item with its canonical index.
type DisplayEntry struct {
	Item  Item
	Index int
}

// defaultItemNames seed a fresh list.
var defaultItemNames = []string{
	"Towel",
	"Water bottle",
	"Headphones",
	"Gym shoes",
	"Workout clothes",
	"Lock",
}

// DefaultItems returns the starter list, all unchecked.
func DefaultItems() []Item {
	items := make([]Item, 0, len(defaultItemNames))
	for _, name := range defaultItemNames {
		items = append(items, Item{Text: name})
	}
	return items
}

func cloneItems(items []Item) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	return out
}

// LoadOutcome reports which branch Load took.
type LoadOutcome int

const (
	// LoadedPersisted means stored data was parsed and adopted.
	LoadedPersisted LoadOutcome = iota
	// LoadedDefaults means nothing was stored and the defaults were seeded.
	LoadedDefaults
	// RecoveredDefaults means stored data was unreadable and replaced by the defaults.
	RecoveredDefaults
)

func (o LoadOutcome) String() string {
	switch o {
	case LoadedPersisted:
		return "persisted"
	case LoadedDefaults:
		return "defaulted"
	case RecoveredDefaults:
		return "recovered"
	default:
		return "unknown"
	}
}
