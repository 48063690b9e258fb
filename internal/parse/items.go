package parse

import "strings"

// itemNames translates internal reward item paths to display names. Paths
// without an entry fall back to splitting the PascalCase final path segment.
var itemNames = map[string]string{
	"/Lotus/Types/Items/MiscItems/InfestedAladCoordinate":                "Infested Alad V Nav Coordinate",
	"/Lotus/Types/Items/Research/ChemComponent":                          "Detonite Injector",
	"/Lotus/Types/Items/Research/BioComponent":                           "Mutagen Mass",
	"/Lotus/Types/Items/Research/EnergyComponent":                        "Fieldron",
	"/Lotus/Types/Recipes/Weapons/SnipetronVandalBlueprint":              "Snipetron Vandal Blueprint",
	"/Lotus/Types/Recipes/Weapons/DeraVandalBlueprint":                   "Dera Vandal Blueprint",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/TwinVipersWraithReceiver":  "Twin Viper Wraith Receiver",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/DeraVandalReceiver":        "Dera Vandal Receiver",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/GrineerCombatKnifeHilt":    "Sheev Hilt",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/GrineerCombatKnifeBlade":   "Sheev Blade",
	"/Lotus/Types/Recipes/Weapons/GrineerCombatKnifeSortieBlueprint":     "Sheev Blueprint",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/SnipetronVandalStock":      "Snipetron Vandal Stock",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/LatronWraithBarrel":        "Latron Wraith Barrel",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/KarakWraithReceiver":       "Karak Wraith Receiver",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/DeraVandalBarrel":          "Dera Vandal Barrel",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/TwinVipersWraithBarrel":    "Twin Vipers Wraith Barrel",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/StrunWraithBarrel":         "Strun Wraith Barrel",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/StrunWraithReceiver":       "Strun Wraith Receiver",
	"/Lotus/Types/Recipes/Weapons/WeaponParts/DeraVandalStock":           "Dera Vandal Stock",
	"/Lotus/Types/Recipes/Components/FormaBlueprint":                     "Forma Blueprint",
	"/Lotus/Types/Recipes/Components/UtilityUnlockerBlueprint":           "Exilus Warframe Adapter Blueprint",
	"/Lotus/Types/Recipes/Components/OrokinCatalystBlueprint":            "Orokin Catalyst Blueprint",
	"/Lotus/Types/Recipes/Components/OrokinReactorBlueprint":             "Orokin Reactor Blueprint",
}

// itemName resolves a reward item path to its display name. The table entry
// wins; otherwise the final path segment is split on its capitals.
func itemName(path string) string {
	if name, ok := itemNames[path]; ok {
		return name
	}
	segment := path
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		segment = path[idx+1:]
	}
	return splitPascalCase(segment)
}

// splitPascalCase inserts a space before every uppercase letter past the
// first character: "TwinVipersWraithReceiver" -> "Twin Vipers Wraith Receiver".
func splitPascalCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return b.String()
}
