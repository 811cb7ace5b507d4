package guild

import "fmt"

// Entity ids are distinct integer-tagged types, strictly positive, allocated
// from the meta counters with read-then-increment, and never reused.

type ContractID int64

type HeroID int64

type ActiveID int64

func (id ContractID) Valid() bool { return id > 0 }
func (id HeroID) Valid() bool     { return id > 0 }
func (id ActiveID) Valid() bool   { return id > 0 }

func (id ContractID) String() string { return fmt.Sprintf("C%06d", int64(id)) }
func (id HeroID) String() string     { return fmt.Sprintf("H%06d", int64(id)) }
func (id ActiveID) String() string   { return fmt.Sprintf("A%06d", int64(id)) }
