// Package items implements item pockets, the item PC and the bag that groups
// pockets for one game.
//
// Occupied slots of a List always form a prefix. The Generation II TM/HM
// pocket is the exception: it has one fixed slot per machine and only the
// amounts change.
package items

import (
	"sort"

	"github.com/louisbranch/pkmnkit/internal/pkmn/game"
	"github.com/louisbranch/pkmnkit/internal/pkmn/refdb"
	apperrors "github.com/louisbranch/pkmnkit/internal/platform/errors"
)

// MaxAmount is the most of one item a slot holds.
const MaxAmount = 99

// Slot is one (item, amount) entry. Empty slots hold refdb.NoItem.
type Slot struct {
	Item   string
	Amount int
}

// Empty reports whether the slot holds nothing.
func (s Slot) Empty() bool {
	return s.Item == "" || s.Item == refdb.NoItem
}

// Kind selects how a List stores its slots.
type Kind int

const (
	// Stacked lists hold up to MaxAmount of each item, one slot per item.
	Stacked Kind = iota
	// Singles lists hold each item at most once with an amount of 1.
	Singles
	// Fixed lists have one slot per valid item in a fixed order.
	Fixed
)

// List is one pocket or the item PC of a game.
type List struct {
	cat    *refdb.Catalog
	game   game.Game
	pocket refdb.Pocket
	kind   Kind
	valid  []refdb.Item
	slots  []Slot
	n      int
}

// NewList builds an empty list for pocket, which must belong to g's version group.
func NewList(cat *refdb.Catalog, g game.Game, pocket refdb.Pocket) (*List, error) {
	if pocket.VersionGroup != g.VersionGroup() {
		return nil, apperrors.InvalidArgument(string(g)+" pocket", pocket.Name)
	}
	l := &List{cat: cat, game: g, pocket: pocket, kind: kindOf(g, pocket)}
	for _, it := range cat.Items(g) {
		if pocket.Accepts(it) {
			l.valid = append(l.valid, it)
		}
	}
	sort.SliceStable(l.valid, func(i, j int) bool {
		a, _ := cat.ItemIndex(g, l.valid[i])
		b, _ := cat.ItemIndex(g, l.valid[j])
		return a < b
	})

	l.slots = make([]Slot, pocket.Capacity)
	for i := range l.slots {
		l.slots[i] = Slot{Item: refdb.NoItem}
	}
	if l.kind == Fixed {
		if len(l.valid) != pocket.Capacity {
			return nil, apperrors.InvalidFormat("fixed pocket " + pocket.Name + " does not match its item list")
		}
		for i, it := range l.valid {
			l.slots[i].Item = it.Name
		}
	}
	return l, nil
}

// NewPocket builds the named pocket of g.
func NewPocket(cat *refdb.Catalog, g game.Game, name string) (*List, error) {
	for _, p := range cat.Pockets(g.VersionGroup()) {
		if refdb.SameName(p.Name, name) {
			return NewList(cat, g, p)
		}
	}
	return nil, apperrors.InvalidArgument(string(g)+" pocket", name)
}

func kindOf(g game.Game, p refdb.Pocket) Kind {
	if g.Generation() != 2 {
		return Stacked
	}
	switch p.Name {
	case "TM/HM":
		return Fixed
	case "KeyItems":
		return Singles
	}
	return Stacked
}

// Name returns the pocket name.
func (l *List) Name() string { return l.pocket.Name }

// Game returns the game the list belongs to.
func (l *List) Game() game.Game { return l.game }

// Kind returns the storage kind.
func (l *List) Kind() Kind { return l.kind }

// Len returns the capacity.
func (l *List) Len() int { return len(l.slots) }

// NumItems returns the number of occupied slots.
func (l *List) NumItems() int {
	if l.kind != Fixed {
		return l.n
	}
	n := 0
	for _, s := range l.slots {
		if s.Amount > 0 {
			n++
		}
	}
	return n
}

// At returns slot i.
func (l *List) At(i int) (Slot, error) {
	if i < 0 || i >= len(l.slots) {
		return Slot{}, apperrors.OutOfRange("position", 0, len(l.slots)-1)
	}
	return l.slots[i], nil
}

// Slots returns a copy of every slot, empty ones included.
func (l *List) Slots() []Slot {
	return append([]Slot(nil), l.slots...)
}

// ValidItems lists the names of items this list accepts, in index order.
func (l *List) ValidItems() []string {
	out := make([]string, len(l.valid))
	for i, it := range l.valid {
		out[i] = it.Name
	}
	return out
}

// Clone returns an independent copy.
func (l *List) Clone() *List {
	c := *l
	c.slots = append([]Slot(nil), l.slots...)
	return &c
}

func (l *List) resolve(name string) (refdb.Item, error) {
	it, err := l.cat.Item(name)
	if err != nil || it.Name == refdb.NoItem {
		return refdb.Item{}, apperrors.InvalidArgument(l.pocket.Name+" item", name)
	}
	for _, v := range l.valid {
		if v.Name == it.Name {
			return it, nil
		}
	}
	return refdb.Item{}, apperrors.InvalidArgument(l.pocket.Name+" item", name)
}

// Accepts reports whether name may be stored in the list.
func (l *List) Accepts(name string) bool {
	_, err := l.resolve(name)
	return err == nil
}

func (l *List) find(name string) int {
	for i, s := range l.slots {
		if s.Item == name && (l.kind == Fixed || i < l.n) {
			return i
		}
	}
	return -1
}

func checkAmount(kind Kind, amount int) error {
	if kind == Singles {
		if amount != 1 {
			return apperrors.OutOfRange("amount", 1, 1)
		}
		return nil
	}
	if amount < 1 || amount > MaxAmount {
		return apperrors.OutOfRange("amount", 1, MaxAmount)
	}
	return nil
}

// Add adds amount of an item, stacking onto its existing slot or taking the
// first free slot.
func (l *List) Add(name string, amount int) error {
	if err := checkAmount(l.kind, amount); err != nil {
		return err
	}
	it, err := l.resolve(name)
	if err != nil {
		return err
	}
	if i := l.find(it.Name); i >= 0 {
		if l.kind == Singles {
			return apperrors.InvalidArgument(l.pocket.Name+" duplicate item", it.Name)
		}
		total := l.slots[i].Amount + amount
		if total > MaxAmount {
			return apperrors.OutOfRange("amount", 1, MaxAmount-l.slots[i].Amount)
		}
		l.slots[i].Amount = total
		return nil
	}
	if l.n >= len(l.slots) {
		return apperrors.OutOfRange(l.pocket.Name+" items", 0, len(l.slots))
	}
	l.slots[l.n] = Slot{Item: it.Name, Amount: amount}
	l.n++
	return nil
}

// Remove takes amount of an item away, closing the gap when its slot empties.
func (l *List) Remove(name string, amount int) error {
	if err := checkAmount(l.kind, amount); err != nil {
		return err
	}
	it, err := l.resolve(name)
	if err != nil {
		return err
	}
	i := l.find(it.Name)
	if i < 0 || l.slots[i].Amount == 0 {
		return apperrors.InvalidArgument(l.pocket.Name+" item not held", it.Name)
	}
	if amount > l.slots[i].Amount {
		return apperrors.OutOfRange("amount", 1, l.slots[i].Amount)
	}
	l.slots[i].Amount -= amount
	if l.kind == Fixed || l.slots[i].Amount > 0 {
		return nil
	}
	copy(l.slots[i:], l.slots[i+1:l.n])
	l.n--
	l.slots[l.n] = Slot{Item: refdb.NoItem}
	return nil
}

// Move takes the slot at from and reinserts it at to, shifting the slots in
// between.
func (l *List) Move(from, to int) error {
	if l.kind == Fixed {
		return apperrors.Unsupported("reordering "+l.pocket.Name, string(l.game))
	}
	if from < 0 || from >= l.n {
		return apperrors.OutOfRange("from position", 0, l.n-1)
	}
	if to < 0 || to >= l.n {
		return apperrors.OutOfRange("to position", 0, l.n-1)
	}
	moved := l.slots[from]
	if from < to {
		copy(l.slots[from:to], l.slots[from+1:to+1])
	} else {
		copy(l.slots[to+1:from+1], l.slots[to:from])
	}
	l.slots[to] = moved
	return nil
}

// Set writes slot i directly. An empty item (refdb.NoItem with amount 0)
// may only be written to the last occupied slot. A new item may only be
// written to an occupied slot or the first free one.
func (l *List) Set(i int, name string, amount int) error {
	if i < 0 || i >= len(l.slots) {
		return apperrors.OutOfRange("position", 0, len(l.slots)-1)
	}
	if l.kind == Fixed {
		return l.setFixed(i, name, amount)
	}
	if name == "" || refdb.SameName(name, refdb.NoItem) {
		if amount != 0 {
			return apperrors.OutOfRange("empty slot amount", 0, 0)
		}
		if i != l.n-1 {
			return apperrors.InvalidArgument("clear position", "only the last occupied slot can be cleared")
		}
		l.n--
		l.slots[l.n] = Slot{Item: refdb.NoItem}
		return nil
	}
	if err := checkAmount(l.kind, amount); err != nil {
		return err
	}
	if i > l.n {
		return apperrors.OutOfRange("position", 0, l.n)
	}
	it, err := l.resolve(name)
	if err != nil {
		return err
	}
	if j := l.find(it.Name); j >= 0 && j != i {
		return apperrors.InvalidArgument(l.pocket.Name+" duplicate item", it.Name)
	}
	l.slots[i] = Slot{Item: it.Name, Amount: amount}
	if i == l.n {
		l.n++
	}
	return nil
}

func (l *List) setFixed(i int, name string, amount int) error {
	if !refdb.SameName(name, l.slots[i].Item) {
		return apperrors.InvalidArgument(l.pocket.Name+" position item", name)
	}
	if amount < 0 || amount > MaxAmount {
		return apperrors.OutOfRange("amount", 0, MaxAmount)
	}
	l.slots[i].Amount = amount
	return nil
}
