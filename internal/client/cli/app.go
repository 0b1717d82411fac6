// Package cli implements the interactive wall client.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/wallfeed/wallfeed/internal/client/api"
	"github.com/wallfeed/wallfeed/internal/client/session"
	"github.com/wallfeed/wallfeed/internal/client/storage"
	"github.com/wallfeed/wallfeed/internal/dto"
)

type App struct {
	api     *api.Client
	manager *session.Manager
	scanner *bufio.Scanner
}

func NewApp(serverURL, stateDir string) (*App, error) {
	store, err := storage.NewFileStorage(stateDir)
	if err != nil {
		return nil, err
	}
	apiClient := api.NewClient(serverURL)
	manager := session.NewManager(apiClient, session.NewRepository(store))

	return &App{
		api:     apiClient,
		manager: manager,
		scanner: bufio.NewScanner(os.Stdin),
	}, nil
}

func (a *App) prompt(label string) string {
	fmt.Printf("%s: ", label)
	if !a.scanner.Scan() {
		return ""
	}
	return strings.TrimSpace(a.scanner.Text())
}

func (a *App) status() string {
	if a.manager.IsAuthenticated && a.manager.User != nil {
		return a.manager.User.Email
	}
	if a.manager.IsAuthenticated {
		return "session"
	}
	return "anonymous"
}

func (a *App) Run(ctx context.Context) {
	fmt.Println("Wall client (type 'help' for commands)")

	for {
		fmt.Printf("wall %s> ", a.status())
		if !a.scanner.Scan() {
			break
		}
		parts := strings.Fields(a.scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.manager.IsAuthenticated {
				fmt.Println("Available commands: feed, post, delete, profile, avatar, whoami, logout, exit")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}
		case "register":
			a.register(ctx)
		case "login":
			a.login(ctx)
		case "logout":
			a.logout()
		case "whoami":
			a.whoami()
		case "feed":
			a.feed(ctx, args)
		case "post":
			a.createPost(ctx)
		case "delete":
			a.deletePost(ctx, args)
		case "profile":
			a.profile(ctx, args)
		case "avatar":
			a.avatar(ctx, args)
		case "exit", "quit":
			return
		default:
			fmt.Println("Unknown command, type 'help'")
		}
	}
}

func (a *App) register(ctx context.Context) {
	email := a.prompt("email")
	password := a.prompt("password")
	if err := a.manager.Register(ctx, email, password); err != nil {
		fmt.Println("Registration failed:", err)
		return
	}
	fmt.Println("Registered as", a.manager.User.Email)
}

func (a *App) login(ctx context.Context) {
	email := a.prompt("email")
	password := a.prompt("password")
	if err := a.manager.Login(ctx, email, password); err != nil {
		fmt.Println("Login failed:", err)
		return
	}
	fmt.Println("Logged in as", a.manager.User.Email)
}

func (a *App) logout() {
	if err := a.manager.Logout(); err != nil {
		fmt.Println("Logout failed:", err)
		return
	}
	fmt.Println("Logged out")
}

func (a *App) whoami() {
	if !a.manager.IsAuthenticated {
		fmt.Println("Not logged in")
		return
	}
	if a.manager.User == nil {
		fmt.Println("Stored session without profile data")
		return
	}
	fmt.Printf("id=%d email=%s name=%s %s\n",
		a.manager.User.ID, a.manager.User.Email,
		a.manager.User.FirstName, a.manager.User.LastName)
}

func (a *App) requireAuth() bool {
	if !a.manager.IsAuthenticated {
		fmt.Println("Login first")
		return false
	}
	return true
}

func (a *App) feed(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}

	limit, offset := 5, 0
	var userID uint
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			limit = n
		}
	}
	if len(args) > 1 {
		if n, err := strconv.Atoi(args[1]); err == nil {
			offset = n
		}
	}
	if len(args) > 2 {
		if n, err := strconv.ParseUint(args[2], 10, 64); err == nil {
			userID = uint(n)
		}
	}

	posts, err := a.api.ListPosts(ctx, a.manager.Token, limit, offset, "DESC", userID)
	if err != nil {
		fmt.Println("Failed to load feed:", err)
		return
	}
	if len(posts) == 0 {
		fmt.Println("The wall is empty")
		return
	}
	for _, post := range posts {
		fmt.Printf("#%d [%s] %s\n", post.ID, post.Author.Email, post.Text)
		for _, img := range post.Images {
			fmt.Println("   image:", img)
		}
	}
}

func (a *App) createPost(ctx context.Context) {
	if !a.requireAuth() {
		return
	}
	text := a.prompt("text")
	if text == "" {
		fmt.Println("Post text is required")
		return
	}
	var images []string
	if paths := a.prompt("image files (space-separated, empty for none)"); paths != "" {
		images = strings.Fields(paths)
	}

	post, err := a.api.CreatePost(ctx, a.manager.Token, text, images)
	if err != nil {
		fmt.Println("Failed to create post:", err)
		return
	}
	fmt.Printf("Posted #%d\n", post.ID)
}

func (a *App) deletePost(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: delete <post id>")
		return
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fmt.Println("Bad post id:", args[0])
		return
	}
	if err := a.api.DeletePost(ctx, a.manager.Token, uint(id)); err != nil {
		fmt.Println("Failed to delete post:", err)
		return
	}
	fmt.Println("Deleted")
}

func (a *App) profile(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}

	if len(args) > 0 && args[0] == "edit" {
		a.editProfile(ctx)
		return
	}

	id := uint(0)
	if a.manager.User != nil {
		id = a.manager.User.ID
	}
	if len(args) > 0 {
		if n, err := strconv.ParseUint(args[0], 10, 64); err == nil {
			id = uint(n)
		}
	}
	if id == 0 {
		fmt.Println("Usage: profile <id> | profile edit")
		return
	}

	snapshot, err := a.api.GetProfile(ctx, a.manager.Token, id)
	if err != nil {
		fmt.Println("Failed to load profile:", err)
		return
	}
	fmt.Printf("id=%d email=%s name=%s %s\nabout: %s\nbirth date: %s phone: %s avatar: %s\n",
		snapshot.ID, snapshot.Email, snapshot.FirstName, snapshot.LastName,
		snapshot.About, snapshot.BirthDate, snapshot.Phone, snapshot.Avatar)
}

func (a *App) editProfile(ctx context.Context) {
	update := &dto.UpdateProfileRequest{}
	if v := a.prompt("first name (empty keeps current)"); v != "" {
		update.FirstName = &v
	}
	if v := a.prompt("last name (empty keeps current)"); v != "" {
		update.LastName = &v
	}
	if v := a.prompt("about (empty keeps current)"); v != "" {
		update.About = &v
	}
	if v := a.prompt("phone (empty keeps current)"); v != "" {
		update.Phone = &v
	}
	if v := a.prompt("birth date YYYY-MM-DD (empty keeps current)"); v != "" {
		update.BirthDate = &v
	}

	snapshot, err := a.api.UpdateProfile(ctx, a.manager.Token, a.manager.User.ID, update)
	if err != nil {
		fmt.Println("Failed to update profile:", err)
		return
	}
	a.manager.User = snapshot
	fmt.Println("Profile updated")
}

func (a *App) avatar(ctx context.Context, args []string) {
	if !a.requireAuth() {
		return
	}
	if len(args) == 0 {
		fmt.Println("Usage: avatar <image file>")
		return
	}
	snapshot, err := a.api.UploadAvatar(ctx, a.manager.Token, a.manager.User.ID, args[0])
	if err != nil {
		fmt.Println("Failed to upload avatar:", err)
		return
	}
	a.manager.User = snapshot
	fmt.Println("Avatar set to", snapshot.Avatar)
}
