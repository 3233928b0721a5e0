package data

import (
	"fmt"

	"github.com/udisondev/worldseed/internal/model"
)

// Stat keys of the default catalog.
// Контент ссылается на атрибуты только по этим ключам.
const (
	StatLevel               = "Level"
	StatMaximumHealth       = "MaximumHealth"
	StatMaximumMana         = "MaximumMana"
	StatPhysicalBaseDmg     = "PhysicalBaseDmg"
	StatMinimumPhysBaseDmg  = "MinimumPhysBaseDmg"
	StatMaximumPhysBaseDmg  = "MaximumPhysBaseDmg"
	StatDefenseBase         = "DefenseBase"
	StatAttackRatePvm       = "AttackRatePvm"
	StatDefenseRatePvm      = "DefenseRatePvm"
	StatPoisonResistance    = "PoisonResistance"
	StatIceResistance       = "IceResistance"
	StatLightningResistance = "LightningResistance"
	StatFireResistance      = "FireResistance"
	StatWaterResistance     = "WaterResistance"
	StatEarthResistance     = "EarthResistance"
	StatWindResistance      = "WindResistance"
	StatCanFly              = "CanFly"
	StatIsHorseEquipped     = "IsHorseEquipped"
	StatMoneyAmountRate     = "MoneyAmountRate"
)

// attributeDef: определение атрибута для Go-литералов.
type attributeDef struct {
	key         string
	designation string
	description string
}

var attributeDefs = []attributeDef{
	{StatLevel, "Level", "The level of the character or monster."},
	{StatMaximumHealth, "Maximum Health", "The maximum health points."},
	{StatMaximumMana, "Maximum Mana", "The maximum mana points."},
	{StatPhysicalBaseDmg, "Physical Base Damage", "Flat physical damage added to every hit."},
	{StatMinimumPhysBaseDmg, "Minimum Physical Base Damage", "Lower bound of the physical damage roll."},
	{StatMaximumPhysBaseDmg, "Maximum Physical Base Damage", "Upper bound of the physical damage roll."},
	{StatDefenseBase, "Defense Base", "Base defense against physical hits."},
	{StatAttackRatePvm, "Attack Rate (PvM)", "Hit chance rating against monsters."},
	{StatDefenseRatePvm, "Defense Rate (PvM)", "Evasion rating against monsters."},
	{StatPoisonResistance, "Poison Resistance", "Chance to resist poison, 0..1."},
	{StatIceResistance, "Ice Resistance", "Chance to resist ice, 0..1."},
	{StatLightningResistance, "Lightning Resistance", "Chance to resist lightning, 0..1."},
	{StatFireResistance, "Fire Resistance", "Chance to resist fire, 0..1."},
	{StatWaterResistance, "Water Resistance", "Chance to resist water, 0..1."},
	{StatEarthResistance, "Earth Resistance", "Chance to resist earth, 0..1."},
	{StatWindResistance, "Wind Resistance", "Chance to resist wind, 0..1."},
	{StatCanFly, "Can Fly", "Non-zero if the character can enter sky maps."},
	{StatIsHorseEquipped, "Is Horse Equipped", "Non-zero if a horse is equipped."},
	{StatMoneyAmountRate, "Money Amount Rate", "Multiplier for dropped money."},
}

// NewAttributeCatalog builds a fresh catalog with the default stat definitions.
// Each call returns new definition instances.
func NewAttributeCatalog() *model.AttributeCatalog {
	c := model.NewAttributeCatalog(len(attributeDefs))
	for _, d := range attributeDefs {
		if err := c.Add(&model.AttributeDefinition{
			Key:         d.key,
			Designation: d.designation,
			Description: d.description,
		}); err != nil {
			// Literals above are static; a clash is a programming error.
			panic(fmt.Sprintf("default attribute catalog: %v", err))
		}
	}
	return c
}
