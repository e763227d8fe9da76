package access

import (
	"encoding/json"
	"testing"
)

func TestParseRole(t *testing.T) {
	cases := []struct {
		in  string
		out Role
	}{
		{"", -1},
		{"foo", -1},
		{OwnerRole.String(), OwnerRole},
		{AdminRole.String(), AdminRole},
		{MemberRole.String(), MemberRole},
		{NoRole.String(), NoRole},
	}

	for _, c := range cases {
		out := ParseRole(c.in)
		if out != c.out {
			t.Errorf("ParseRole(%q) => %d, want %d", c.in, out, c.out)
		}
	}
}

func TestCanInvite(t *testing.T) {
	cases := map[Role]bool{
		NoRole:     false,
		MemberRole: false,
		AdminRole:  true,
		OwnerRole:  true,
	}
	for r, want := range cases {
		if got := r.CanInvite(); got != want {
			t.Errorf("%s.CanInvite() => %t, want %t", r, got, want)
		}
	}
}

func TestRoleJSON(t *testing.T) {
	var v struct {
		Role Role `json:"role"`
	}
	if err := json.Unmarshal([]byte(`{"role":"admin"}`), &v); err != nil {
		t.Fatal(err)
	}
	if v.Role != AdminRole {
		t.Errorf("Unmarshal => %s, want %s", v.Role, AdminRole)
	}
	if err := json.Unmarshal([]byte(`{"role":"owner!"}`), &v); err == nil {
		t.Error("Unmarshal(owner!) => nil error, want error")
	}
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `{"role":"admin"}` {
		t.Errorf("Marshal => %s", b)
	}
}
