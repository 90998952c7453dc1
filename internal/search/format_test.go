package search

import "testing"

func TestFormatIDList(t *testing.T) {
	items := []Candidate{
		Member{User: User{ID: "1", Username: "a"}},
		Ban{User: User{ID: "42", Username: "b"}},
	}
	if got := FormatIDList(items); got != "1 42" {
		t.Fatalf("unexpected id list: %q", got)
	}
}

func TestFormatList_PadsIDsAndAppendsNickname(t *testing.T) {
	items := []Candidate{
		Member{User: User{ID: "7", Username: "short", Discriminator: "0001"}, Nick: "Shorty"},
		Member{User: User{ID: "123456", Username: "long", Discriminator: "0002"}},
		Ban{User: User{ID: "88", Username: "banned", Discriminator: "0003"}},
	}
	want := "7      short#0001 (Shorty)\n" +
		"123456 long#0002\n" +
		"88     banned#0003"
	if got := FormatList(items); got != want {
		t.Fatalf("unexpected list:\n%s\nwant:\n%s", got, want)
	}
}
