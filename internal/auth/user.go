package auth

// User is the current session's account. Optional fields prefill the
// checkout form when present.
type User struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Area    string `json:"area,omitempty"`
}

// ProfilePatch updates only the fields that are set.
type ProfilePatch struct {
	Name    *string `json:"name,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	Area    *string `json:"area,omitempty"`
}

func (u *User) apply(p ProfilePatch) {
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Phone != nil {
		u.Phone = *p.Phone
	}
	if p.Address != nil {
		u.Address = *p.Address
	}
	if p.City != nil {
		u.City = *p.City
	}
	if p.Area != nil {
		u.Area = *p.Area
	}
}
