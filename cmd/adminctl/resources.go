package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cyberxltr/admin-platform/pkg/client"
)

func listFlags(cmd *cobra.Command, opts *client.ListOptions) {
	cmd.Flags().IntVar(&opts.Skip, "skip", 0, "rows to skip")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "max rows")
	cmd.Flags().StringVar(&opts.Search, "search", "", "search filter")
}

func orgsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "orgs", Short: "Manage tenant organizations"}

	var listOpts client.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List organizations",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := api.ListOrganizations(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			for _, o := range page.Organizations {
				fmt.Printf("%s  %-30s %-20s tier=%-10s active=%v\n", o.ID, o.Name, o.URL, o.SubscriptionTier, o.IsActive)
			}
			fmt.Printf("total: %d\n", page.Total)
			return nil
		},
	}
	listFlags(list, &listOpts)
	list.Flags().StringVar(&listOpts.Status, "status", "", "active or inactive")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := api.GetOrganization(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n  name: %s\n  url: %s\n  tier: %s\n  active: %v\n", o.ID, o.Name, o.URL, o.SubscriptionTier, o.IsActive)
			return nil
		},
	}

	var createReq client.CreateOrganizationRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Create an organization",
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := api.CreateOrganization(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created %s (%s)\n", o.Name, o.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createReq.Name, "name", "", "organization name")
	create.Flags().StringVar(&createReq.URL, "url", "", "unique url slug")
	create.Flags().StringVar(&createReq.SubscriptionTier, "tier", "", "subscription tier")
	create.Flags().StringVar(&createReq.BillingEmail, "billing-email", "", "billing contact")
	create.MarkFlagRequired("name")
	create.MarkFlagRequired("url")

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete an organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.DeactivateOrganization(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deactivated")
			return nil
		},
	}

	reactivate := &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Restore a soft-deleted organization",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ReactivateOrganization(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Reactivated")
			return nil
		},
	}

	cmd.AddCommand(list, get, create, deactivate, reactivate)
	return cmd
}

func usersCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "users", Short: "Manage user accounts"}

	var listOpts client.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := api.ListUsers(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			for _, u := range page.Users {
				fmt.Printf("%s  %-30s %-25s active=%v verified=%v\n", u.ID, u.Email, u.FullName, u.IsActive, u.EmailVerified)
			}
			fmt.Printf("total: %d\n", page.Total)
			return nil
		},
	}
	listFlags(list, &listOpts)

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := api.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("%s\n  email: %s\n  name: %s\n  active: %v\n", u.ID, u.Email, u.FullName, u.IsActive)
			return nil
		},
	}

	deactivate := &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Soft-delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.DeactivateUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Deactivated")
			return nil
		},
	}

	reactivate := &cobra.Command{
		Use:   "reactivate <id>",
		Short: "Restore a soft-deleted user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.ReactivateUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println("Reactivated")
			return nil
		},
	}

	cmd.AddCommand(list, get, deactivate, reactivate)
	return cmd
}

func notificationsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "notifications", Short: "Manage broadcast notifications"}

	var listOpts client.ListOptions
	list := &cobra.Command{
		Use:   "list",
		Short: "List notifications",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := api.ListNotifications(cmd.Context(), listOpts)
			if err != nil {
				return err
			}
			for _, n := range page.Notifications {
				fmt.Printf("%s  [%-8s] p%d %-40s active=%v\n", n.ID, n.Type, n.Priority, n.Title, n.IsActive)
			}
			fmt.Printf("total: %d\n", page.Total)
			return nil
		},
	}
	listFlags(list, &listOpts)

	var createReq client.CreateNotificationRequest
	create := &cobra.Command{
		Use:   "create",
		Short: "Broadcast a notification",
		RunE: func(cmd *cobra.Command, args []string) error {
			n, err := api.CreateNotification(cmd.Context(), createReq)
			if err != nil {
				return err
			}
			fmt.Printf("Created notification %s\n", n.ID)
			return nil
		},
	}
	create.Flags().StringVar(&createReq.Title, "title", "", "notification title")
	create.Flags().StringVar(&createReq.Message, "message", "", "notification body")
	create.Flags().StringVar(&createReq.Type, "type", "info", "notification type")
	create.Flags().IntVar(&createReq.Priority, "priority", 1, "priority")
	create.MarkFlagRequired("title")
	create.MarkFlagRequired("message")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show notification counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := api.NotificationOverview(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("total: %d\nactive: %d\nlast 7 days: %d\n", s.Total, s.Active, s.Recent)
			return nil
		},
	}

	cmd.AddCommand(list, create, stats)
	return cmd
}
