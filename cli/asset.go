package cli

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/uamcli/uamcli/api"
	"github.com/uamcli/uamcli/client"
)

func addAssetCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Digital asset operations",
	}

	addAssetSearchCommand(cmd)
	addAssetGetCommand(cmd)
	addAssetCreateCommand(cmd)
	addAssetDownloadCommand(cmd)
	addAssetDeleteCommand(cmd)
	addAssetStatusCommand(cmd)
	addAssetMetadataCommand(cmd)
	addAssetThumbnailCommand(cmd)
	parent.AddCommand(cmd)
}

func addAssetSearchCommand(parent *cobra.Command) {
	var (
		assetID      string
		assetVersion string
		assetName    string
		pageSize     int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Searches for assets in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			query := &client.SearchQuery{Name: assetName, PageSize: pageSize}
			if assetID != "" {
				query.Identity = &api.AssetIdentity{ID: assetID, Version: assetVersion}
			}

			assets, err := c.SearchAssets(cmd.Context(), query)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), assets)
		},
	}
	cmd.Flags().StringVar(&assetID, "asset-id", "", "Optional: the asset ID")
	cmd.Flags().StringVar(&assetVersion, "asset-version", "1", "Asset version, used together with --asset-id")
	cmd.Flags().StringVar(&assetName, "asset-name", "", "Optional: the name of the asset")
	cmd.Flags().IntVar(&pageSize, "page-size", api.SearchPageSize, "Records per search page")
	parent.AddCommand(cmd)
}

func addAssetGetCommand(parent *cobra.Command) {
	var assetID, assetVersion string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Retrieves an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			asset, err := c.GetAsset(cmd.Context(), api.AssetIdentity{ID: assetID, Version: assetVersion})
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), asset)
		},
	}
	addIdentityFlags(cmd, &assetID, &assetVersion)
	parent.AddCommand(cmd)
}

func addAssetCreateCommand(parent *cobra.Command) {
	var (
		name        string
		description string
		dataFiles   []string
		publish     bool
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Creates a new asset in the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			var total int64
			for _, file := range dataFiles {
				info, err := os.Stat(file)
				if err != nil {
					return errors.WithStack(err)
				}
				total += info.Size()
			}
			tracker := newTracker(total, true, flagQuiet)

			opts := &client.CreateOptions{Publish: publish, Progress: trackerProgress(tracker)}
			if description != "" {
				opts.Description = &description
			}

			identity, err := c.CreateAsset(cmd.Context(), name, dataFiles, opts)
			tracker.Close()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), identity)
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Asset name")
	cmd.Flags().StringVar(&description, "description", "", "Asset description")
	cmd.Flags().StringArrayVar(&dataFiles, "data", nil, "File containing the model data; repeatable")
	cmd.Flags().BoolVar(&publish, "publish", false, "Publish the asset automatically after creation")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("data")
	parent.AddCommand(cmd)
}

func addAssetDownloadCommand(parent *cobra.Command) {
	var (
		assetID      string
		assetVersion string
		downloadDir  string
	)

	cmd := &cobra.Command{
		Use:   "download",
		Short: "Downloads all asset files",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			identity := api.AssetIdentity{ID: assetID, Version: assetVersion}
			urls, err := c.DownloadURLs(cmd.Context(), identity)
			if err != nil {
				return err
			}
			tracker := newTracker(int64(len(urls)), false, flagQuiet)
			defer tracker.Close()

			return c.DownloadAssetFiles(cmd.Context(), identity, &client.DownloadOptions{
				Directory: downloadDir,
				Progress:  trackerProgress(tracker),
				URLs:      urls,
			})
		},
	}
	addIdentityFlags(cmd, &assetID, &assetVersion)
	cmd.Flags().StringVar(&downloadDir, "download-dir", "", "Download directory path")
	parent.AddCommand(cmd)
}

func addAssetDeleteCommand(parent *cobra.Command) {
	var assetIDs []string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Withdraws asset(s) from the project",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			for _, id := range assetIDs {
				identity := api.AssetIdentity{ID: id, Version: "1"}
				if err := c.WithdrawAsset(cmd.Context(), identity); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Withdrawn %s\n", id)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&assetIDs, "asset-id", nil, "Asset ID; repeatable or comma-separated")
	_ = cmd.MarkFlagRequired("asset-id")
	parent.AddCommand(cmd)
}

func addAssetStatusCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Status operations on an asset",
	}

	var (
		assetID      string
		assetVersion string
		status       string
	)

	set := &cobra.Command{
		Use:   "set",
		Short: "Sets the asset status",
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := api.ParseAssetStatus(status)
			if err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			identity := api.AssetIdentity{ID: assetID, Version: assetVersion}
			return c.SetAssetStatus(cmd.Context(), identity, parsed)
		},
	}
	addIdentityFlags(set, &assetID, &assetVersion)
	set.Flags().StringVar(&status, "status", "", "Asset status value (draft, inreview, approved, published, rejected, withdrawn)")
	_ = set.MarkFlagRequired("status")

	cmd.AddCommand(set)
	parent.AddCommand(cmd)
}

func addAssetThumbnailCommand(parent *cobra.Command) {
	var assetID, assetVersion string

	cmd := &cobra.Command{
		Use:   "generate-thumbnail",
		Short: "Generates thumbnails for asset(s) lacking one",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}

			query := &client.SearchQuery{}
			if assetID != "" {
				query.Identity = &api.AssetIdentity{ID: assetID, Version: assetVersion}
			}
			assets, err := c.SearchAssets(cmd.Context(), query)
			if err != nil {
				return err
			}

			for _, asset := range assets {
				if asset.PreviewFile != nil || asset.PreviewFileDatasetID == nil {
					continue
				}
				err := c.GenerateThumbnails(cmd.Context(), asset.Identity(), *asset.PreviewFileDatasetID, nil)
				if err != nil {
					return err
				}
			}
			return printJSON(cmd.OutOrStdout(), assets)
		},
	}
	cmd.Flags().StringVar(&assetID, "asset-id", "", "Optional: the asset ID; when absent all assets without a preview are processed")
	cmd.Flags().StringVar(&assetVersion, "asset-version", "1", "Asset version, used together with --asset-id")
	parent.AddCommand(cmd)
}

// addIdentityFlags declares the required identity pair shared by most asset
// commands.
func addIdentityFlags(cmd *cobra.Command, assetID, assetVersion *string) {
	cmd.Flags().StringVar(assetID, "asset-id", "", "Asset ID")
	cmd.Flags().StringVar(assetVersion, "asset-version", "1", "Asset version")
	_ = cmd.MarkFlagRequired("asset-id")
}
