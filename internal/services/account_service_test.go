package services_test

import (
	"errors"
	"testing"

	"technest/internal/catalog"
	"technest/internal/repos"
	"technest/internal/services"
)

func TestAccountService_TopUp(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	svc := services.NewAccountService(userRepo)
	uid := demoUserID(t, db)

	// below the Rp 1.000 minimum
	if _, err := svc.TopUp(uid, 999); !errors.Is(err, services.ErrAmountTooSmall) {
		t.Fatalf("want ErrAmountTooSmall, got %v", err)
	}
	before, err := svc.Balance(uid)
	if err != nil {
		t.Fatal(err)
	}

	after, err := svc.TopUp(uid, 500_000)
	if err != nil {
		t.Fatal(err)
	}
	if after != before+500_000 {
		t.Fatalf("want balance %d, got %d", before+500_000, after)
	}

	// unknown user
	if _, err := svc.TopUp(99999, 5000); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestAccountService_UpdateProfilePasswordChange(t *testing.T) {
	db := memdb(t)
	userRepo := repos.NewUserRepo(db)
	svc := services.NewAccountService(userRepo)
	authSvc := services.NewAuthService(userRepo)
	uid := demoUserID(t, db)

	in := services.ProfileInput{
		FullName:        "Andi P.",
		Email:           "andi@technest.test",
		Phone:           "+6281234567890",
		CurrentPassword: "wrong-password",
		NewPassword:     "N3wSecret99",
	}
	if _, err := svc.UpdateProfile(uid, in); !errors.Is(err, services.ErrWrongPassword) {
		t.Fatalf("want ErrWrongPassword, got %v", err)
	}

	in.CurrentPassword = "Techn3st!"
	u, err := svc.UpdateProfile(uid, in)
	if err != nil {
		t.Fatal(err)
	}
	if u.FullName != "Andi P." {
		t.Fatalf("profile not saved: %+v", u)
	}

	// old password no longer works, new one does
	if _, err := authSvc.Login("andi@technest.test", "Techn3st!"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("old password should be rejected, got %v", err)
	}
	if _, err := authSvc.Login("andi@technest.test", "N3wSecret99"); err != nil {
		t.Fatalf("new password should work: %v", err)
	}
}

func TestAccountService_Membership(t *testing.T) {
	db := memdb(t)
	svc := services.NewAccountService(repos.NewUserRepo(db))
	uid := demoUserID(t, db)

	// seeded member: Premium with 45,200,000 spent toward VIP at 50,000,000
	st, err := svc.Membership(uid)
	if err != nil {
		t.Fatal(err)
	}
	if st.Tier != "Premium" || st.NextTier != "VIP" {
		t.Fatalf("bad tier status: %+v", st)
	}
	if st.Progress.Remaining != 4_800_000 {
		t.Fatalf("want remaining 4800000, got %d", st.Progress.Remaining)
	}
	if st.Progress.Percent < 90.3 || st.Progress.Percent > 90.5 {
		t.Fatalf("want ~90.4 percent, got %v", st.Progress.Percent)
	}
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	db := memdb(t)
	svc := services.NewAuthService(repos.NewUserRepo(db))

	u, err := svc.Register(services.RegisterInput{
		FullName: "Budi Santoso",
		Email:    "budi@technest.test",
		Phone:    "+628111222333",
		Password: "Sup3rSecret",
	})
	if err != nil {
		t.Fatal(err)
	}
	if u.ID == 0 || u.Balance != 0 {
		t.Fatalf("unexpected new user: %+v", u)
	}

	if _, err := svc.Register(services.RegisterInput{
		FullName: "Budi Again",
		Email:    "budi@technest.test",
		Phone:    "+628111222333",
		Password: "Sup3rSecret",
	}); !errors.Is(err, services.ErrEmailTaken) {
		t.Fatalf("want ErrEmailTaken, got %v", err)
	}

	if _, err := svc.Login("budi@technest.test", "nope"); !errors.Is(err, services.ErrBadCreds) {
		t.Fatalf("want ErrBadCreds, got %v", err)
	}
	got, err := svc.Login("budi@technest.test", "Sup3rSecret")
	if err != nil {
		t.Fatal(err)
	}
	if got.ID != u.ID {
		t.Fatalf("want user %d, got %d", u.ID, got.ID)
	}
}

func TestCatalogService_ListFiltersAndSorts(t *testing.T) {
	db := memdb(t)
	svc := services.NewCatalogService(repos.NewProductRepo(db))

	all, err := svc.List(catalog.Criteria{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) == 0 {
		t.Fatal("seeded catalog should not be empty")
	}
	for i := 1; i < len(all); i++ {
		if all[i-1].Price > all[i].Price {
			t.Fatalf("not sorted ascending at %d", i)
		}
	}
}
