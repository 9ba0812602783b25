package entity

// NoWeaponID is substituted for a missing alternate weapon id so weapon
// queries keep a fixed parameter arity. It never matches a catalog weapon.
const NoWeaponID = -1

// weaponAliases maps weapons to the id of their reskin variant. The variants
// were renumbered at some point but play identically, so builds filed under
// either id belong to the same pool.
var weaponAliases = map[int]int{
	40:   41,
	41:   40,
	60:   61,
	61:   60,
	1010: 1011,
	1011: 1010,
	2070: 2071,
	2071: 2070,
	3030: 3031,
	3031: 3030,
	5000: 5001,
	5001: 5000,
}

// AltWeaponID returns the alternate id of weaponID, or NoWeaponID when the
// weapon has no reskin variant.
func AltWeaponID(weaponID int) int {
	if alt, ok := weaponAliases[weaponID]; ok {
		return alt
	}
	return NoWeaponID
}
