package cli

import (
	"github.com/spf13/cobra"

	"github.com/uamcli/uamcli/api"
	"github.com/uamcli/uamcli/client"
)

func addAssetMetadataCommand(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "metadata",
		Short: "Metadata operations",
	}

	addMetadataUploadCommand(cmd)
	addMetadataDeleteCommand(cmd)
	parent.AddCommand(cmd)
}

func addMetadataUploadCommand(parent *cobra.Command) {
	var (
		assetID      string
		assetVersion string
		dataFile     string
	)

	cmd := &cobra.Command{
		Use:   "upload",
		Short: "Uploads metadata for an asset",
		Long: `Uploads metadata for an asset from a CSV file.

The file must have two columns with a header line naming them: Name, Value.
Entries without a value are skipped. The uploaded set replaces any metadata
previously stored on the asset.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := client.ReadMetadataFile(dataFile)
			if err != nil {
				return err
			}

			c, err := newClient()
			if err != nil {
				return err
			}
			identity := api.AssetIdentity{ID: assetID, Version: assetVersion}
			return c.UpsertMetadata(cmd.Context(), identity, entries)
		},
	}
	addIdentityFlags(cmd, &assetID, &assetVersion)
	cmd.Flags().StringVar(&dataFile, "data", "", "CSV file with two columns: Name, Value")
	_ = cmd.MarkFlagRequired("data")
	parent.AddCommand(cmd)
}

func addMetadataDeleteCommand(parent *cobra.Command) {
	var (
		assetID      string
		assetVersion string
		keys         []string
	)

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Deletes metadata associated with an asset",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient()
			if err != nil {
				return err
			}
			identity := api.AssetIdentity{ID: assetID, Version: assetVersion}
			return c.DeleteMetadata(cmd.Context(), identity, keys)
		},
	}
	addIdentityFlags(cmd, &assetID, &assetVersion)
	cmd.Flags().StringSliceVar(&keys, "meta", nil, "Metadata property name; repeatable or comma-separated")
	_ = cmd.MarkFlagRequired("meta")
	parent.AddCommand(cmd)
}
