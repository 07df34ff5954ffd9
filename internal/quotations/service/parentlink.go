package service

import "github.com/google/uuid"

// mainItemLinks is the lookup state built while assigning identifiers
// to the main-item lines of a replacement batch. remap translates the
// id an incoming line carried (an existing row's id) to the freshly
// assigned one; byPosition records which batch positions became main
// items and what id each received.
type mainItemLinks struct {
	remap      map[uuid.UUID]uuid.UUID
	byPosition map[int]uuid.UUID
}

func newMainItemLinks() *mainItemLinks {
	return &mainItemLinks{
		remap:      make(map[uuid.UUID]uuid.UUID),
		byPosition: make(map[int]uuid.UUID),
	}
}

// parentLinkStrategy resolves the owning main item for one raw-material
// line. Strategies are tried in order until one succeeds.
type parentLinkStrategy interface {
	resolve(parentRef *uuid.UUID, position int, links *mainItemLinks) (uuid.UUID, bool)
}

// explicitReference resolves through the id-remap table: the client
// named a main item by its previous id and we translate it to the id
// that main item received in this batch.
type explicitReference struct{}

func (explicitReference) resolve(parentRef *uuid.UUID, _ int, links *mainItemLinks) (uuid.UUID, bool) {
	if parentRef == nil {
		return uuid.Nil, false
	}
	id, ok := links.remap[*parentRef]
	return id, ok
}

// nearestPreceding scans backward from the raw-material line's position
// in the flat batch to the closest main item before it. This encodes
// the UI convention that raw materials are listed directly under the
// item they belong to.
type nearestPreceding struct{}

func (nearestPreceding) resolve(_ *uuid.UUID, position int, links *mainItemLinks) (uuid.UUID, bool) {
	for p := position - 1; p >= 0; p-- {
		if id, ok := links.byPosition[p]; ok {
			return id, true
		}
	}
	return uuid.Nil, false
}

var parentLinkStrategies = []parentLinkStrategy{
	explicitReference{},
	nearestPreceding{},
}

// resolveParentLink assigns a parent to a raw-material line, trying the
// explicit-reference rule first and the positional rule second. A false
// result means no main item could be matched at all; the line is still
// persisted, with a null parent, and the gap is reported to the caller.
func resolveParentLink(parentRef *uuid.UUID, position int, links *mainItemLinks) (uuid.UUID, bool) {
	for _, strategy := range parentLinkStrategies {
		if id, ok := strategy.resolve(parentRef, position, links); ok {
			return id, true
		}
	}
	return uuid.Nil, false
}
