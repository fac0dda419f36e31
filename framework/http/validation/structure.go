package validation

// CheckStructure reports whether payload is non-empty and every entry is an
// object carrying both a "value" and a string "rules" key.
//
// The engine runs it before any rule so that value and rule extraction never
// meets a missing key.
func CheckStructure(payload *Payload) bool {
	if payload.Len() == 0 {
		return false
	}

	valid := true
	payload.Each(func(_ string, entry any) {
		if valid && !wellFormed(entry) {
			valid = false
		}
	})
	return valid
}

func wellFormed(entry any) bool {
	field, ok := entry.(map[string]any)
	if !ok {
		return false
	}
	if _, ok := field[ValueKey]; !ok {
		return false
	}
	rules, ok := field[RulesKey]
	if !ok {
		return false
	}
	_, isString := rules.(string)
	return isString
}
