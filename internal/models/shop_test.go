package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTypeSlotGroup(t *testing.T) {
	// Hair and headwear share one merged group in both directions.
	assert.ElementsMatch(t, []ItemType{ItemTypeHair, ItemTypeHeadwear}, ItemTypeHair.SlotGroup())
	assert.ElementsMatch(t, []ItemType{ItemTypeHair, ItemTypeHeadwear}, ItemTypeHeadwear.SlotGroup())

	// Every other type is its own singleton group.
	assert.Equal(t, []ItemType{ItemTypeTop}, ItemTypeTop.SlotGroup())
	assert.Equal(t, []ItemType{ItemTypeBottom}, ItemTypeBottom.SlotGroup())
	assert.Equal(t, []ItemType{ItemTypeBoots}, ItemTypeBoots.SlotGroup())
}

func TestInventoryItemOwned(t *testing.T) {
	assert.False(t, (&InventoryItem{}).Owned())
	assert.False(t, (&InventoryItem{IsUnlocked: true}).Owned())
	assert.False(t, (&InventoryItem{IsPurchased: true}).Owned())
	assert.True(t, (&InventoryItem{IsUnlocked: true, IsPurchased: true}).Owned())
}
