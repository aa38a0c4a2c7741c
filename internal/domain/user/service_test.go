package user

import (
	"context"
	"strings"
	"testing"
)

type fakeRepo struct {
	users  map[uint]*User
	nextID uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{users: make(map[uint]*User), nextID: 1}
}

func (f *fakeRepo) Create(ctx context.Context, u *User) error {
	u.ID = f.nextID
	f.nextID++
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) FindByID(ctx context.Context, id uint) (*User, error) {
	u, ok := f.users[id]
	if !ok || !u.Active {
		return nil, ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	for _, u := range f.users {
		if u.Active && u.Email == email {
			return u, nil
		}
	}
	return nil, ErrUserNotFound
}

func (f *fakeRepo) Update(ctx context.Context, u *User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id uint) error {
	u, ok := f.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.Deactivate()
	return nil
}

func (f *fakeRepo) List(ctx context.Context) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		if u.Active {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByRole(ctx context.Context, role Role) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		if u.Active && u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeRepo) ListByRoles(ctx context.Context, roles []Role) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		if !u.Active {
			continue
		}
		for _, role := range roles {
			if u.Role == role {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeRepo) Search(ctx context.Context, keyword string, role Role) ([]*User, error) {
	var out []*User
	for _, u := range f.users {
		if !u.Active {
			continue
		}
		if role != "" && u.Role != role {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(u.Name), strings.ToLower(keyword)) &&
			!strings.Contains(strings.ToLower(u.Email), strings.ToLower(keyword)) {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func validUser() *User {
	return &User{
		Name:  "Priya Sharma",
		Email: "priya@schoolshop.example",
		Role:  RoleStaff,
	}
}

// TestService_CreateUser 测试密码加密存储
func TestService_CreateUser(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, validUser(), "passw0rd1")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}
	// 存储的必须是bcrypt哈希,不能是明文
	if created.Password == "passw0rd1" {
		t.Error("密码不能明文存储")
	}
	if !strings.HasPrefix(created.Password, "$2") {
		t.Errorf("密码应为bcrypt哈希, 实际 %q", created.Password[:4])
	}

	// 弱密码
	weak := validUser()
	weak.Email = "weak@schoolshop.example"
	if _, err := svc.CreateUser(ctx, weak, "short"); err != ErrWeakPassword {
		t.Errorf("弱密码应返回ErrWeakPassword, 实际 %v", err)
	}
	if _, err := svc.CreateUser(ctx, weak, "onlyletters"); err != ErrWeakPassword {
		t.Errorf("纯字母密码应返回ErrWeakPassword, 实际 %v", err)
	}

	// 邮箱重复
	if _, err := svc.CreateUser(ctx, validUser(), "passw0rd1"); err != ErrEmailDuplicate {
		t.Errorf("重复邮箱应返回ErrEmailDuplicate, 实际 %v", err)
	}
}

// TestService_Authenticate 测试登录认证
func TestService_Authenticate(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, err := svc.CreateUser(ctx, validUser(), "passw0rd1")
	if err != nil {
		t.Fatalf("创建账号失败: %v", err)
	}

	// 登录成功并更新LastLogin
	u, err := svc.Authenticate(ctx, created.Email, "passw0rd1")
	if err != nil {
		t.Fatalf("登录失败: %v", err)
	}
	if u.LastLogin == nil {
		t.Error("登录成功后应更新LastLogin")
	}

	// 密码错误与邮箱不存在返回同一个错误
	if _, err := svc.Authenticate(ctx, created.Email, "wrongpass1"); err != ErrInvalidCredentials {
		t.Errorf("密码错误应返回ErrInvalidCredentials, 实际 %v", err)
	}
	if _, err := svc.Authenticate(ctx, "ghost@schoolshop.example", "passw0rd1"); err != ErrInvalidCredentials {
		t.Errorf("邮箱不存在应返回ErrInvalidCredentials, 实际 %v", err)
	}
}

// TestService_ChangePassword 测试修改密码
func TestService_ChangePassword(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, _ := svc.CreateUser(ctx, validUser(), "passw0rd1")

	// 旧密码不匹配
	if err := svc.ChangePassword(ctx, created.ID, "wrongold1", "newpassw0rd"); err != ErrOldPasswordMismatch {
		t.Errorf("旧密码错误应返回ErrOldPasswordMismatch, 实际 %v", err)
	}

	// 新密码强度不足
	if err := svc.ChangePassword(ctx, created.ID, "passw0rd1", "weak"); err != ErrWeakPassword {
		t.Errorf("弱新密码应返回ErrWeakPassword, 实际 %v", err)
	}

	// 修改成功后旧密码失效
	if err := svc.ChangePassword(ctx, created.ID, "passw0rd1", "newpassw0rd1"); err != nil {
		t.Fatalf("修改密码失败: %v", err)
	}
	if _, err := svc.Authenticate(ctx, created.Email, "passw0rd1"); err != ErrInvalidCredentials {
		t.Errorf("旧密码应已失效, 实际 %v", err)
	}
	if _, err := svc.Authenticate(ctx, created.Email, "newpassw0rd1"); err != nil {
		t.Errorf("新密码应可登录, 实际 %v", err)
	}
}

// TestService_UpdateUser 测试联系方式字段的覆盖更新
func TestService_UpdateUser(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	created, _ := svc.CreateUser(ctx, validUser(), "passw0rd1")

	in := validUser()
	in.Role = RoleManager
	in.Phone = "+919812345678"
	in.Address = "12 MG Road"
	in.City = "Bengaluru"
	in.State = "Karnataka"
	in.Zip = "560001"
	in.Country = "India"

	updated, err := svc.UpdateUser(ctx, created.ID, in)
	if err != nil {
		t.Fatalf("更新账号失败: %v", err)
	}
	if updated.Role != RoleManager {
		t.Errorf("Role = %q, 期望 %q", updated.Role, RoleManager)
	}
	if updated.Phone != "+919812345678" || updated.Address != "12 MG Road" {
		t.Errorf("联系方式未更新: phone=%q address=%q", updated.Phone, updated.Address)
	}
	if updated.City != "Bengaluru" || updated.State != "Karnataka" ||
		updated.Zip != "560001" || updated.Country != "India" {
		t.Errorf("地址字段未更新: %q %q %q %q", updated.City, updated.State, updated.Zip, updated.Country)
	}
}

// TestParseRole 测试角色解析
func TestParseRole(t *testing.T) {
	for _, r := range []string{"ADMIN", "MANAGER", "STAFF", "INVENTORY_MANAGER", "SALES_PERSON"} {
		if _, ok := ParseRole(r); !ok {
			t.Errorf("角色 %s 应能解析", r)
		}
	}
	if _, ok := ParseRole("ROOT"); ok {
		t.Error("未知角色不应解析成功")
	}
}
