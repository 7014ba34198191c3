package bloodbank

import (
	"maps"
	"slices"
)

// Stock is the number of blood bags a facility holds per type.
type Stock map[BloodType]int

// Facility is a blood center placed on a road network node.
type Facility struct {
	NodeID int64
	Name   string
	Stock  Stock
}

// Inventory holds the stock of every known facility. It is read-only after construction and safe
// for concurrent use.
type Inventory struct {
	facilities map[int64]Facility
}

// NewInventory indexes facilities by node. A later facility on the same node replaces an earlier one.
func NewInventory(facilities []Facility) *Inventory {
	inventory := &Inventory{facilities: make(map[int64]Facility, len(facilities))}
	for _, facility := range facilities {
		facility.Stock = maps.Clone(facility.Stock)
		inventory.facilities[facility.NodeID] = facility
	}

	return inventory
}

// EligibleFacilities returns the nodes of facilities holding at least one bag of any type the
// recipient can receive.
func (i *Inventory) EligibleFacilities(recipient BloodType) map[int64]struct{} {
	eligible := make(map[int64]struct{})
	for nodeID, facility := range i.facilities {
		for _, donor := range Donors(recipient) {
			if facility.Stock[donor] > 0 {
				eligible[nodeID] = struct{}{}
				break
			}
		}
	}

	return eligible
}

// Stock returns a copy of the stock of the facility on nodeID, or false when none is there.
func (i *Inventory) Stock(nodeID int64) (Stock, bool) {
	facility, ok := i.facilities[nodeID]
	if !ok {
		return nil, false
	}

	return maps.Clone(facility.Stock), true
}

// Facility returns the facility on nodeID.
func (i *Inventory) Facility(nodeID int64) (Facility, bool) {
	facility, ok := i.facilities[nodeID]
	return facility, ok
}

// NodeIDs returns the facility nodes in ascending order.
func (i *Inventory) NodeIDs() []int64 {
	return slices.Sorted(maps.Keys(i.facilities))
}

// Len returns the number of facilities.
func (i *Inventory) Len() int {
	return len(i.facilities)
}
